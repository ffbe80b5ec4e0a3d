package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation error")
)

// Streak lengths that trigger a milestone push.
var milestones = map[int]bool{7: true, 30: true, 100: true}

type HabitService interface {
	Create(ctx context.Context, dto CreateHabitDTO) (*HabitResponse, error)
	List(ctx context.Context, date string) (*ListHabitsResponse, error)
	Get(ctx context.Context, id string) (*HabitResponse, error)
	MarkDone(ctx context.Context, id string, dto MarkDoneDTO) (*MarkDoneResponse, error)
}

type habitService struct {
	repo       HabitRepository
	dispatcher notification.Dispatcher
	now        func() time.Time
}

func NewService(repo HabitRepository, dispatcher notification.Dispatcher) HabitService {
	return &habitService{
		repo:       repo,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func userIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func validateCreate(dto *CreateHabitDTO) error {
	if strings.TrimSpace(dto.Name) == "" || dto.CreatedTime == "" || dto.TargetTime == "" || dto.IconID == nil {
		return fmt.Errorf("%w: please provide all required fields", ErrValidation)
	}
	if len(dto.Name) > 100 {
		return fmt.Errorf("%w: habit name cannot be more than 100 characters", ErrValidation)
	}
	if _, err := time.Parse(time.RFC3339, dto.CreatedTime); err != nil {
		return fmt.Errorf("%w: created_time must be a valid UTC timestamp", ErrValidation)
	}
	if _, err := time.Parse(time.RFC3339, dto.TargetTime); err != nil {
		return fmt.Errorf("%w: target_time must be a valid UTC timestamp", ErrValidation)
	}

	if dto.Repeats == nil && dto.Day != nil {
		dto.Repeats = []int{*dto.Day}
	}
	if dto.Repeats == nil {
		return fmt.Errorf("%w: please provide repeats or a single day (0-6, Monday=0)", ErrValidation)
	}
	for _, day := range dto.Repeats {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: repeats must contain valid day numbers (0-6, where Monday=0)", ErrValidation)
		}
	}
	return nil
}

func (s *habitService) Create(ctx context.Context, dto CreateHabitDTO) (*HabitResponse, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx, log, "create habit")
	if err != nil {
		return nil, err
	}

	if err := validateCreate(&dto); err != nil {
		return nil, err
	}

	h := Habit{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(dto.Name),
		CreatedTime: dto.CreatedTime,
		TargetTime:  dto.TargetTime,
		IconID:      *dto.IconID,
		Repeats:     RepeatDays(dto.Repeats),
		Completions: Completions{},
		UserID:      userID,
	}

	if err := s.repo.Create(&h); err != nil {
		log.WithError(err).Error("Failed to create habit")
		return nil, err
	}

	s.notify(ctx, userID, notification.HabitCreated(h.ID.String(), h.Name))

	log.WithField("habit_id", h.ID).Info("Habit created")
	resp := toResponse(&h, s.now(), false)
	return &resp, nil
}

// List returns the habits due on the given date (today when empty), each
// annotated with whether it was completed on that date.
func (s *habitService) List(ctx context.Context, date string) (*ListHabitsResponse, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx, log, "list habits")
	if err != nil {
		return nil, err
	}

	day, err := ParseDay(date, s.now())
	if err != nil {
		return nil, err
	}

	habits, err := s.repo.FindDueOn(userID, DayIndex(day))
	if err != nil {
		log.WithError(err).Error("Failed to list due habits")
		return nil, err
	}

	data := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		data = append(data, toResponse(&habits[i], day, false))
	}
	return &ListHabitsResponse{Count: len(data), Data: data}, nil
}

func (s *habitService) Get(ctx context.Context, id string) (*HabitResponse, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx, log, "get habit")
	if err != nil {
		return nil, err
	}

	h, err := s.findOwned(log, id, userID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(h, s.now(), true)
	return &resp, nil
}

func (s *habitService) MarkDone(ctx context.Context, id string, dto MarkDoneDTO) (*MarkDoneResponse, error) {
	log := config.WithContext(ctx)

	userID, err := userIDFromContext(ctx, log, "mark habit done")
	if err != nil {
		return nil, err
	}

	habitID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrHabitNotFound
	}

	var outcome *Outcome
	h, err := s.repo.UpdateLocked(habitID, func(h *Habit) error {
		// Ownership is reported as not-found to avoid leaking existence,
		// consistent with the read path.
		if h.UserID != userID {
			log.WithFields(logrus.Fields{
				"habit_id": id,
				"user_id":  userID,
			}).Warn("Habit does not belong to user")
			return ErrHabitNotFound
		}
		outcome, err = Record(h, dto.Timestamp, s.now())
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		if errors.Is(err, ErrHabitNotFound) || errors.Is(err, ErrInvalidTimestamp) {
			return nil, err
		}
		log.WithError(err).Error("Failed to record completion")
		return nil, err
	}

	if !outcome.Duplicate {
		s.notify(ctx, userID, notification.HabitCompleted(h.ID.String(), h.Name, outcome.Streak))
		if milestones[outcome.Streak] {
			s.notify(ctx, userID, notification.Milestone(h.ID.String(), h.Name, outcome.Streak))
		}
	}

	log.WithFields(logrus.Fields{
		"habit_id":  h.ID,
		"streak":    outcome.Streak,
		"duplicate": outcome.Duplicate,
	}).Info("Completion recorded")

	return &MarkDoneResponse{
		HabitID:    h.ID,
		Completion: outcome.Completion,
		Streak:     outcome.Streak,
		Duplicate:  outcome.Duplicate,
	}, nil
}

func (s *habitService) findOwned(log logrus.FieldLogger, id string, userID uuid.UUID) (*Habit, error) {
	habitID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrHabitNotFound
	}

	h, err := s.repo.FindByID(habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		log.WithError(err).Error("Failed to find habit")
		return nil, err
	}

	if h.UserID != userID {
		log.WithFields(logrus.Fields{
			"habit_id": id,
			"user_id":  userID,
		}).Warn("Habit does not belong to user")
		return nil, ErrHabitNotFound
	}
	return h, nil
}

// notify is fire-and-forget: delivery failures are logged and never fail the
// triggering request.
func (s *habitService) notify(ctx context.Context, userID uuid.UUID, n notification.Notification) {
	if err := s.dispatcher.SendToUser(ctx, userID, n); err != nil {
		config.WithContext(ctx).WithError(err).
			Warnf("Failed to send %q notification", n.Type)
	}
}
