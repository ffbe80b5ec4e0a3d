package user

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDTO struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	Height               float64 `json:"height"`
	Weight               float64 `json:"weight"`
	Age                  int     `json:"age"`
	Gender               string  `json:"gender"`
	FitnessLevel         string  `json:"fitness_level"`
	PrimaryGoal          string  `json:"primary_goal"`
	WakeUpTime           string  `json:"wake_up_time"`
	SleepTime            string  `json:"sleep_time"`
	PreferredWorkoutTime string  `json:"preferred_workout_time"`
	MotivationLevel      string  `json:"motivation_level"`
	WeeklyGoal           string  `json:"weekly_goal"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Height               float64   `json:"height"`
	Weight               float64   `json:"weight"`
	Age                  int       `json:"age"`
	Gender               string    `json:"gender"`
	FitnessLevel         string    `json:"fitness_level"`
	PrimaryGoal          string    `json:"primary_goal"`
	WakeUpTime           string    `json:"wake_up_time"`
	SleepTime            string    `json:"sleep_time"`
	PreferredWorkoutTime string    `json:"preferred_workout_time"`
	MotivationLevel      string    `json:"motivation_level"`
	WeeklyGoal           string    `json:"weekly_goal"`
	Notifications        bool      `json:"notifications"`
	CreatedAt            time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Height:               u.Height,
		Weight:               u.Weight,
		Age:                  u.Age,
		Gender:               u.Gender,
		FitnessLevel:         u.FitnessLevel,
		PrimaryGoal:          u.PrimaryGoal,
		WakeUpTime:           u.WakeUpTime,
		SleepTime:            u.SleepTime,
		PreferredWorkoutTime: u.PreferredWorkoutTime,
		MotivationLevel:      u.MotivationLevel,
		WeeklyGoal:           u.WeeklyGoal,
		Notifications:        u.Notifications,
		CreatedAt:            u.CreatedAt,
	}
}
