package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Email                string    `gorm:"uniqueIndex;not null" json:"email"`
	Password             string    `gorm:"not null" json:"-"`
	Height               float64   `json:"height"`
	Weight               float64   `json:"weight"`
	Age                  int       `json:"age"`
	Gender               string    `json:"gender"`
	FitnessLevel         string    `gorm:"column:fitness_level" json:"fitness_level"`
	PrimaryGoal          string    `gorm:"column:primary_goal" json:"primary_goal"`
	WakeUpTime           string    `gorm:"column:wake_up_time" json:"wake_up_time"`
	SleepTime            string    `gorm:"column:sleep_time" json:"sleep_time"`
	PreferredWorkoutTime string    `gorm:"column:preferred_workout_time" json:"preferred_workout_time"`
	MotivationLevel      string    `gorm:"column:motivation_level" json:"motivation_level"`
	WeeklyGoal           string    `gorm:"column:weekly_goal;default:3" json:"weekly_goal"`
	Notifications        bool      `gorm:"default:true" json:"notifications"`
	// FCMToken is stored AES-GCM encrypted; never serialized.
	FCMToken  string    `gorm:"column:fcm_token" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
