package habit

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitRepository interface {
	Create(h *Habit) error
	FindByID(id uuid.UUID) (*Habit, error)
	ListByUser(userID uuid.UUID) ([]Habit, error)
	FindDueOn(userID uuid.UUID, dayIndex int) ([]Habit, error)
	Update(h *Habit) error
	// UpdateLocked runs fn against the habit row under SELECT ... FOR UPDATE
	// and persists the mutated row in the same transaction. This serializes
	// concurrent mark-done writes per habit.
	UpdateLocked(id uuid.UUID, fn func(h *Habit) error) (*Habit, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) HabitRepository {
	return &repository{db: db}
}

func (r *repository) Create(h *Habit) error {
	return r.db.Create(h).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Habit, error) {
	var h Habit
	if err := r.db.First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) ListByUser(userID uuid.UUID) ([]Habit, error) {
	var habits []Habit
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// FindDueOn returns the user's habits whose repeat set contains the weekday.
// Legacy rows store day values as jsonb numbers or strings, so both
// representations are matched.
func (r *repository) FindDueOn(userID uuid.UUID, dayIndex int) ([]Habit, error) {
	var habits []Habit
	if err := r.db.
		Where("user_id = ?", userID).
		Where("repeats @> ? OR repeats @> ?",
			fmt.Sprintf("[%d]", dayIndex),
			fmt.Sprintf(`["%d"]`, dayIndex)).
		Order("created_at DESC").
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *repository) Update(h *Habit) error {
	return r.db.Save(h).Error
}

func (r *repository) UpdateLocked(id uuid.UUID, fn func(h *Habit) error) (*Habit, error) {
	var h Habit
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&h, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&h); err != nil {
			return err
		}
		return tx.Save(&h).Error
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}
