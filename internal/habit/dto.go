package habit

import (
	"time"

	"github.com/google/uuid"
)

type CreateHabitDTO struct {
	Name        string `json:"name"`
	CreatedTime string `json:"created_time"`
	TargetTime  string `json:"target_time"`
	IconID      *int   `json:"icon_id"`
	Repeats     []int  `json:"repeats"`
	// Day is a convenience for single-day habits; normalized into a
	// one-element Repeats set at creation.
	Day *int `json:"day"`
}

type MarkDoneDTO struct {
	Timestamp string `json:"timestamp"`
}

// HabitResponse annotates the persisted habit with fields derived for the
// requested date.
type HabitResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	CreatedTime string      `json:"created_time"`
	TargetTime  string      `json:"target_time"`
	IconID      int         `json:"icon_id"`
	Repeats     RepeatDays  `json:"repeats"`
	Completions Completions `json:"completions"`
	Streak      int         `json:"streak"`
	UserID      uuid.UUID   `json:"user_id"`
	Completed   bool        `json:"completed"`
	// LastCompletion is the most recently recorded completion, when any.
	LastCompletion *Completion `json:"last_completion,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type MarkDoneResponse struct {
	HabitID    uuid.UUID  `json:"habit_id"`
	Completion Completion `json:"completion"`
	Streak     int        `json:"streak"`
	Duplicate  bool       `json:"duplicate"`
}

type ListHabitsResponse struct {
	Count int             `json:"count"`
	Data  []HabitResponse `json:"data"`
}

func toResponse(h *Habit, forDate time.Time, withLast bool) HabitResponse {
	resp := HabitResponse{
		ID:          h.ID,
		Name:        h.Name,
		CreatedTime: h.CreatedTime,
		TargetTime:  h.TargetTime,
		IconID:      h.IconID,
		Repeats:     h.Repeats,
		Completions: h.Completions,
		Streak:      h.Streak,
		UserID:      h.UserID,
		Completed:   CompletedOn(h.Completions, forDate),
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
	if withLast && len(h.Completions) > 0 {
		last := h.Completions[len(h.Completions)-1]
		resp.LastCompletion = &last
	}
	return resp
}
