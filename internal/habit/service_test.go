package habit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"gorm.io/gorm"
)

type fakeRepo struct {
	mu     sync.Mutex
	habits map[uuid.UUID]*Habit
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{habits: make(map[uuid.UUID]*Habit)}
}

func (r *fakeRepo) Create(h *Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *h
	r.habits[h.ID] = &stored
	return nil
}

func (r *fakeRepo) FindByID(id uuid.UUID) (*Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *h
	return &copied, nil
}

func (r *fakeRepo) ListByUser(userID uuid.UUID) ([]Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Habit
	for _, h := range r.habits {
		if h.UserID == userID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindDueOn(userID uuid.UUID, dayIndex int) ([]Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Habit
	for _, h := range r.habits {
		if h.UserID == userID && h.Repeats.Contains(dayIndex) {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(h *Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *h
	r.habits[h.ID] = &stored
	return nil
}

func (r *fakeRepo) UpdateLocked(id uuid.UUID, fn func(h *Habit) error) (*Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (d *fakeDispatcher) SendToUser(ctx context.Context, userID uuid.UUID, n notification.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, n)
	return nil
}

func (d *fakeDispatcher) types() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.sent))
	for _, n := range d.sent {
		out = append(out, n.Type)
	}
	return out
}

var serviceNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*habitService, *fakeRepo, *fakeDispatcher, context.Context, uuid.UUID) {
	t.Helper()
	repo := newFakeRepo()
	dispatcher := &fakeDispatcher{}
	svc := &habitService{
		repo:       repo,
		dispatcher: dispatcher,
		now:        func() time.Time { return serviceNow },
	}

	userID := uuid.New()
	ctx := auth.ContextWithClaims(context.Background(), &auth.UserClaims{UserID: userID.String()})
	return svc, repo, dispatcher, ctx, userID
}

func intPtr(n int) *int { return &n }

func validCreateDTO() CreateHabitDTO {
	return CreateHabitDTO{
		Name:        "Read 20 pages",
		CreatedTime: "2024-01-10T07:00:00.000Z",
		TargetTime:  "2024-01-10T08:00:00.000Z",
		IconID:      intPtr(3),
		Repeats:     []int{0, 2, 4},
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		svc, repo, dispatcher, ctx, userID := newTestService(t)

		resp, err := svc.Create(ctx, validCreateDTO())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if resp.UserID != userID {
			t.Errorf("habit owner = %v, want %v", resp.UserID, userID)
		}
		if len(repo.habits) != 1 {
			t.Fatalf("expected one stored habit, got %d", len(repo.habits))
		}

		types := dispatcher.types()
		if len(types) != 1 || types[0] != "habit_created" {
			t.Errorf("expected a habit_created notification, got %v", types)
		}
	})

	t.Run("DayNormalizedToRepeats", func(t *testing.T) {
		svc, _, _, ctx, _ := newTestService(t)

		dto := validCreateDTO()
		dto.Repeats = nil
		dto.Day = intPtr(6)

		resp, err := svc.Create(ctx, dto)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(resp.Repeats) != 1 || resp.Repeats[0] != 6 {
			t.Errorf("day should normalize to a one-element repeats set, got %v", resp.Repeats)
		}
	})

	t.Run("ValidationFailures", func(t *testing.T) {
		svc, _, _, ctx, _ := newTestService(t)

		cases := map[string]func(*CreateHabitDTO){
			"MissingName":      func(d *CreateHabitDTO) { d.Name = "" },
			"BlankName":        func(d *CreateHabitDTO) { d.Name = "   " },
			"LongName":         func(d *CreateHabitDTO) { d.Name = strings.Repeat("x", 101) },
			"MissingIcon":      func(d *CreateHabitDTO) { d.IconID = nil },
			"BadCreatedTime":   func(d *CreateHabitDTO) { d.CreatedTime = "yesterday" },
			"BadTargetTime":    func(d *CreateHabitDTO) { d.TargetTime = "08:00" },
			"NoRepeatsNoDay":   func(d *CreateHabitDTO) { d.Repeats = nil },
			"RepeatOutOfRange": func(d *CreateHabitDTO) { d.Repeats = []int{0, 7} },
			"NegativeRepeat":   func(d *CreateHabitDTO) { d.Repeats = []int{-1} },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				dto := validCreateDTO()
				mutate(&dto)
				if _, err := svc.Create(ctx, dto); !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			})
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		if _, err := svc.Create(context.Background(), validCreateDTO()); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestServiceList(t *testing.T) {
	svc, _, _, ctx, _ := newTestService(t)

	// Due Monday and Wednesday; 2024-01-15 is a Monday.
	if _, err := svc.Create(ctx, validCreateDTO()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	weekend := validCreateDTO()
	weekend.Name = "Long hike"
	weekend.Repeats = []int{5, 6}
	if _, err := svc.Create(ctx, weekend); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("DueOnMonday", func(t *testing.T) {
		resp, err := svc.List(ctx, "2024-01-15")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Count != 1 || resp.Data[0].Name != "Read 20 pages" {
			t.Errorf("expected only the weekday habit, got %+v", resp.Data)
		}
	})

	t.Run("DueOnSaturday", func(t *testing.T) {
		resp, err := svc.List(ctx, "2024-01-20")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Count != 1 || resp.Data[0].Name != "Long hike" {
			t.Errorf("expected only the weekend habit, got %+v", resp.Data)
		}
	})

	t.Run("InvalidDate", func(t *testing.T) {
		if _, err := svc.List(ctx, "01/15/2024"); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestServiceMarkDone(t *testing.T) {
	t.Run("NewCompletionThenDuplicate", func(t *testing.T) {
		svc, _, dispatcher, ctx, _ := newTestService(t)

		created, err := svc.Create(ctx, validCreateDTO())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		first, err := svc.MarkDone(ctx, created.ID.String(), MarkDoneDTO{Timestamp: "2024-01-15T08:00:00.000Z"})
		if err != nil {
			t.Fatalf("MarkDone failed: %v", err)
		}
		if first.Duplicate || first.Streak != 1 {
			t.Errorf("unexpected first outcome: %+v", first)
		}

		second, err := svc.MarkDone(ctx, created.ID.String(), MarkDoneDTO{Timestamp: "2024-01-15T20:00:00.000Z"})
		if err != nil {
			t.Fatalf("MarkDone failed: %v", err)
		}
		if !second.Duplicate {
			t.Error("second same-day completion should be a duplicate")
		}

		got, err := svc.Get(ctx, created.ID.String())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Completions) != 1 {
			t.Errorf("expected one persisted completion, got %d", len(got.Completions))
		}
		if !got.Completed {
			t.Error("habit should be annotated completed today")
		}
		if got.LastCompletion == nil {
			t.Error("last_completion should be set")
		}

		for _, typ := range dispatcher.types() {
			if typ == "milestone" {
				t.Error("no milestone notification expected for a 1-day streak")
			}
		}
	})

	t.Run("ForeignHabitReportsNotFound", func(t *testing.T) {
		svc, _, _, ctx, _ := newTestService(t)

		created, err := svc.Create(ctx, validCreateDTO())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		otherCtx := auth.ContextWithClaims(context.Background(), &auth.UserClaims{UserID: uuid.NewString()})

		if _, err := svc.MarkDone(otherCtx, created.ID.String(), MarkDoneDTO{}); !errors.Is(err, ErrHabitNotFound) {
			t.Errorf("write path: expected ErrHabitNotFound for foreign habit, got %v", err)
		}
		if _, err := svc.Get(otherCtx, created.ID.String()); !errors.Is(err, ErrHabitNotFound) {
			t.Errorf("read path: expected ErrHabitNotFound for foreign habit, got %v", err)
		}
	})

	t.Run("UnknownHabit", func(t *testing.T) {
		svc, _, _, ctx, _ := newTestService(t)
		if _, err := svc.MarkDone(ctx, uuid.NewString(), MarkDoneDTO{}); !errors.Is(err, ErrHabitNotFound) {
			t.Errorf("expected ErrHabitNotFound, got %v", err)
		}
	})

	t.Run("InvalidTimestamp", func(t *testing.T) {
		svc, _, _, ctx, _ := newTestService(t)

		created, err := svc.Create(ctx, validCreateDTO())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := svc.MarkDone(ctx, created.ID.String(), MarkDoneDTO{Timestamp: "later"}); !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("expected ErrInvalidTimestamp, got %v", err)
		}
	})

	t.Run("ConcurrentSameDayWritesStoreOneCompletion", func(t *testing.T) {
		svc, repo, _, ctx, _ := newTestService(t)

		created, err := svc.Create(ctx, validCreateDTO())
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.MarkDone(ctx, created.ID.String(), MarkDoneDTO{Timestamp: "2024-01-15T08:00:00.000Z"})
			}()
		}
		wg.Wait()

		h, err := repo.FindByID(created.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if len(h.Completions) != 1 {
			t.Errorf("locked updates must store exactly one completion, got %d", len(h.Completions))
		}
	})
}

func TestServiceMilestoneNotification(t *testing.T) {
	svc, repo, dispatcher, ctx, userID := newTestService(t)

	created, err := svc.Create(ctx, validCreateDTO())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Six consecutive prior days already recorded; today's completion makes 7.
	h, _ := repo.FindByID(created.ID)
	for offset := 1; offset <= 6; offset++ {
		ts := serviceNow.AddDate(0, 0, -offset).Format("2006-01-02") + "T08:00:00.000Z"
		h.Completions = append(h.Completions, Completion{Timestamp: ts, OnTime: true})
	}
	if err := repo.Update(h); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	outcome, err := svc.MarkDone(ctx, created.ID.String(), MarkDoneDTO{Timestamp: "2024-01-15T08:00:00.000Z"})
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if outcome.Streak != 7 {
		t.Fatalf("streak = %d, want 7", outcome.Streak)
	}

	sawMilestone := false
	for _, typ := range dispatcher.types() {
		if typ == "milestone" {
			sawMilestone = true
		}
	}
	if !sawMilestone {
		t.Errorf("expected a milestone notification for user %v at a 7-day streak", userID)
	}
}
