package suggestion

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/habitflow-app/habitflow-api/internal/user"
	"gorm.io/gorm"
)

type fakeProvider struct {
	raw string
	err error
}

func (p fakeProvider) SendPrompt(ctx context.Context, system, prompt string) (string, error) {
	return p.raw, p.err
}

type fakeUserRepo struct {
	u *user.User
}

func (r *fakeUserRepo) Create(u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*user.User, error) {
	if r.u == nil || r.u.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r.u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(u *user.User) error { return nil }

func (r *fakeUserRepo) ListNotifiable() ([]user.User, error) { return nil, nil }

type fakeHabitRepo struct {
	habits map[uuid.UUID]*habit.Habit
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{habits: make(map[uuid.UUID]*habit.Habit)}
}

func (r *fakeHabitRepo) Create(h *habit.Habit) error {
	stored := *h
	r.habits[h.ID] = &stored
	return nil
}

func (r *fakeHabitRepo) FindByID(id uuid.UUID) (*habit.Habit, error) {
	h, ok := r.habits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHabitRepo) ListByUser(userID uuid.UUID) ([]habit.Habit, error) {
	var out []habit.Habit
	for _, h := range r.habits {
		if h.UserID == userID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) FindDueOn(userID uuid.UUID, dayIndex int) ([]habit.Habit, error) {
	return nil, nil
}

func (r *fakeHabitRepo) Update(h *habit.Habit) error {
	stored := *h
	r.habits[h.ID] = &stored
	return nil
}

func (r *fakeHabitRepo) UpdateLocked(id uuid.UUID, fn func(h *habit.Habit) error) (*habit.Habit, error) {
	h, ok := r.habits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(h); err != nil {
		return nil, err
	}
	copied := *h
	return &copied, nil
}

const cannedSuggestions = `[
  {"name": "Morning Run", "description": "Run before work", "target_time": "2024-01-15T07:00:00.000Z", "repeats": [0, 2, 4], "icon_id": 2, "difficulty": "beginner", "category": "fitness", "estimated_duration": 30, "success_tips": ["Lay out clothes the night before"]},
  {"name": "Wind-Down Routine", "description": "Screens off by ten", "target_time": "2024-01-15T22:00:00.000Z", "repeats": [0, 1, 2, 3, 4], "icon_id": 5, "difficulty": "beginner", "category": "sleep", "estimated_duration": 20, "success_tips": ["Set a nightly alarm"]}
]`

func newTestService(t *testing.T, provider Provider) (Service, *fakeHabitRepo, context.Context) {
	t.Helper()
	u := &user.User{
		ID:              uuid.New(),
		Name:            "Dana",
		Age:             30,
		FitnessLevel:    "Intermediate",
		PrimaryGoal:     "endurance",
		MotivationLevel: "4 - High",
	}
	userRepo := &fakeUserRepo{u: u}
	habitRepo := newFakeHabitRepo()
	dispatcher := notification.NewDisabledDispatcher()
	habitSvc := habit.NewService(habitRepo, dispatcher)

	svc := NewService(provider, userRepo, habitRepo, habitSvc, dispatcher)
	ctx := auth.ContextWithClaims(context.Background(), &auth.UserClaims{UserID: u.ID.String()})
	return svc, habitRepo, ctx
}

func TestCategorySuggestions(t *testing.T) {
	t.Run("InvalidCategory", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})
		if _, err := svc.CategorySuggestions(ctx, "gaming", 3); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("FiltersToCategory", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})

		resp, err := svc.CategorySuggestions(ctx, "fitness", 5)
		if err != nil {
			t.Fatalf("CategorySuggestions failed: %v", err)
		}
		if resp.Category != "fitness" {
			t.Errorf("category = %q, want fitness", resp.Category)
		}
		if len(resp.Suggestions) != 1 || resp.Suggestions[0].Name != "Morning Run" {
			t.Errorf("expected only the fitness suggestion, got %+v", resp.Suggestions)
		}
	})

	t.Run("ProviderFailureFallsBack", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{err: errors.New("model unavailable")})

		resp, err := svc.CategorySuggestions(ctx, "fitness", 3)
		if err != nil {
			t.Fatalf("CategorySuggestions failed: %v", err)
		}
		if len(resp.Suggestions) != 2 {
			t.Errorf("expected both fallback fitness suggestions, got %d", len(resp.Suggestions))
		}
	})
}

func TestGoalSuggestions(t *testing.T) {
	t.Run("InvalidGoal", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})
		if _, err := svc.GoalSuggestions(ctx, "time-travel", 5); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Alignment", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})

		resp, err := svc.GoalSuggestions(ctx, "endurance", 5)
		if err != nil {
			t.Fatalf("GoalSuggestions failed: %v", err)
		}
		if !resp.GoalAlignment.IsAligned {
			t.Errorf("user goal matches requested goal, alignment = %+v", resp.GoalAlignment)
		}

		resp, err = svc.GoalSuggestions(ctx, "weight-loss", 5)
		if err != nil {
			t.Fatalf("GoalSuggestions failed: %v", err)
		}
		if resp.GoalAlignment.IsAligned {
			t.Errorf("mismatched goals reported as aligned: %+v", resp.GoalAlignment)
		}
		if len(resp.Suggestions) != 2 {
			t.Errorf("goal suggestions are not category-filtered, got %d", len(resp.Suggestions))
		}
	})
}

func TestCreateFromSuggestion(t *testing.T) {
	iconID := 2

	t.Run("CreatesHabit", func(t *testing.T) {
		svc, habitRepo, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})

		resp, err := svc.CreateFromSuggestion(ctx, CreateFromSuggestionDTO{
			Name:       "Morning Run",
			TargetTime: "2024-01-15T07:00:00.000Z",
			IconID:     &iconID,
			Repeats:    []int{0, 2, 4},
		})
		if err != nil {
			t.Fatalf("CreateFromSuggestion failed: %v", err)
		}
		if resp.Habit.Name != "Morning Run" {
			t.Errorf("habit name = %q, want Morning Run", resp.Habit.Name)
		}
		if resp.Description != "Habit created from AI suggestion" {
			t.Errorf("description not defaulted: %q", resp.Description)
		}
		if len(habitRepo.habits) != 1 {
			t.Errorf("expected one stored habit, got %d", len(habitRepo.habits))
		}
	})

	t.Run("KeepsProvidedDescription", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})

		resp, err := svc.CreateFromSuggestion(ctx, CreateFromSuggestionDTO{
			Name:        "Wind-Down Routine",
			TargetTime:  "2024-01-15T22:00:00.000Z",
			IconID:      &iconID,
			Repeats:     []int{1},
			Description: "Screens off by ten",
		})
		if err != nil {
			t.Fatalf("CreateFromSuggestion failed: %v", err)
		}
		if resp.Description != "Screens off by ten" {
			t.Errorf("description = %q, want the provided one", resp.Description)
		}
	})

	t.Run("InvalidFields", func(t *testing.T) {
		svc, _, ctx := newTestService(t, fakeProvider{raw: cannedSuggestions})

		cases := map[string]CreateFromSuggestionDTO{
			"MissingName":      {TargetTime: "2024-01-15T07:00:00.000Z", IconID: &iconID, Repeats: []int{0}},
			"MissingRepeats":   {Name: "Run", TargetTime: "2024-01-15T07:00:00.000Z", IconID: &iconID},
			"RepeatOutOfRange": {Name: "Run", TargetTime: "2024-01-15T07:00:00.000Z", IconID: &iconID, Repeats: []int{9}},
		}
		for name, dto := range cases {
			t.Run(name, func(t *testing.T) {
				if _, err := svc.CreateFromSuggestion(ctx, dto); !errors.Is(err, habit.ErrValidation) {
					t.Errorf("expected habit validation error, got %v", err)
				}
			})
		}
	})
}
