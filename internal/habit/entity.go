package habit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/user"
)

type Habit struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	// Name is required, at most 100 characters.
	Name string `gorm:"not null" json:"name"`
	// CreatedTime and TargetTime are UTC timestamps kept as strings, as the
	// mobile clients send them. Only TargetTime's time-of-day is meaningful.
	CreatedTime string      `gorm:"column:created_time;not null" json:"created_time"`
	TargetTime  string      `gorm:"column:target_time;not null" json:"target_time"`
	IconID      int         `gorm:"column:icon_id;not null" json:"icon_id"`
	Repeats     RepeatDays  `gorm:"type:jsonb;not null" json:"repeats"`
	Completions Completions `gorm:"type:jsonb" json:"completions"`
	// Streak is cached and recomputed on every completion write.
	Streak    int       `gorm:"not null;default:0" json:"streak"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Completion records that the habit was performed on the UTC calendar date of
// Timestamp. At most one completion exists per distinct UTC date.
type Completion struct {
	Timestamp string `json:"timestamp"`
	// OnTime may be promoted false->true by a later same-day recording,
	// never demoted.
	OnTime bool `json:"on_time"`
}

// Completions is stored as a jsonb array in recording order.
type Completions []Completion

func (c Completions) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Completions) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan type %T into Completions", value)
	}
}

// RepeatDays is the set of weekdays the habit repeats on, Monday=0 ...
// Sunday=6. Legacy rows store day values as either jsonb numbers or strings;
// Scan accepts both and normalizes to ints.
type RepeatDays []int

func (d RepeatDays) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *RepeatDays) Scan(value interface{}) error {
	var raw []interface{}
	switch v := value.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		if err := json.Unmarshal(v, &raw); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot scan type %T into RepeatDays", value)
	}

	days := make(RepeatDays, 0, len(raw))
	for _, e := range raw {
		switch day := e.(type) {
		case float64:
			days = append(days, int(day))
		case string:
			n, err := strconv.Atoi(day)
			if err != nil {
				return fmt.Errorf("invalid repeat day %q", day)
			}
			days = append(days, n)
		default:
			return fmt.Errorf("invalid repeat day of type %T", e)
		}
	}
	*d = days
	return nil
}

// Contains reports set membership regardless of insertion order or
// duplicates.
func (d RepeatDays) Contains(day int) bool {
	for _, v := range d {
		if v == day {
			return true
		}
	}
	return false
}
