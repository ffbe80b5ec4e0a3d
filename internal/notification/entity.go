package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is the push payload handed to the dispatcher. Data values are
// flattened to strings before sending, matching what the mobile clients
// expect in FCM data messages.
type Notification struct {
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Type    string            `json:"type"`
	HabitID string            `json:"habit_id,omitempty"`
	Data    map[string]string `json:"data,omitempty"`
}

// Delivery is one recorded push attempt. The payload column keeps the full
// notification as sent so support can see exactly what a user received.
type Delivery struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      string         `gorm:"not null" json:"type"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	Delivered bool           `json:"delivered"`
	CreatedAt time.Time      `json:"created_at"`
}

func newDelivery(userID uuid.UUID, n Notification, delivered bool) (*Delivery, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return &Delivery{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      n.Type,
		Payload:   datatypes.JSON(payload),
		Delivered: delivered,
	}, nil
}
