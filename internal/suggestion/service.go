package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/habitflow-app/habitflow-api/internal/auth"
	"github.com/habitflow-app/habitflow-api/internal/config"
	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/notification"
	"github.com/habitflow-app/habitflow-api/internal/user"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
)

var validCategories = map[string]bool{
	"fitness":       true,
	"nutrition":     true,
	"mental-health": true,
	"sleep":         true,
	"lifestyle":     true,
}

var validGoals = map[string]bool{
	"weight-loss":     true,
	"muscle-gain":     true,
	"endurance":       true,
	"general-fitness": true,
}

type Service interface {
	Suggestions(ctx context.Context, maxSuggestions int, focusArea string) (*SuggestionsResponse, error)
	CategorySuggestions(ctx context.Context, category string, maxSuggestions int) (*CategorySuggestionsResponse, error)
	GoalSuggestions(ctx context.Context, goal string, maxSuggestions int) (*GoalSuggestionsResponse, error)
	CreateFromSuggestion(ctx context.Context, dto CreateFromSuggestionDTO) (*CreateFromSuggestionResponse, error)
	Analysis(ctx context.Context) (*Analysis, error)
}

type service struct {
	provider   Provider
	userRepo   user.UserRepository
	habitRepo  habit.HabitRepository
	habits     habit.HabitService
	dispatcher notification.Dispatcher
}

func NewService(provider Provider, userRepo user.UserRepository, habitRepo habit.HabitRepository, habits habit.HabitService, dispatcher notification.Dispatcher) Service {
	return &service{
		provider:   provider,
		userRepo:   userRepo,
		habitRepo:  habitRepo,
		habits:     habits,
		dispatcher: dispatcher,
	}
}

func (s *service) load(ctx context.Context) (*user.User, []habit.Habit, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}
	userID := uuid.MustParse(claims.UserID)

	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	habits, err := s.habitRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return u, habits, nil
}

func (s *service) Suggestions(ctx context.Context, maxSuggestions int, focusArea string) (*SuggestionsResponse, error) {
	log := config.WithContext(ctx)

	u, habits, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if maxSuggestions <= 0 {
		maxSuggestions = 5
	}
	if maxSuggestions > 10 {
		maxSuggestions = 10
	}
	if focusArea == "" {
		focusArea = "general"
	}

	suggestions := s.generate(ctx, u, habits, maxSuggestions, focusArea)

	if u.Notifications && len(suggestions) > 0 {
		categories := make([]string, 0, len(suggestions))
		seen := map[string]bool{}
		for _, sug := range suggestions {
			if !seen[sug.Category] {
				seen[sug.Category] = true
				categories = append(categories, sug.Category)
			}
		}
		n := notification.PersonalizedSuggestions(len(suggestions), categories)
		if err := s.dispatcher.SendToUser(ctx, u.ID, n); err != nil {
			log.WithError(err).Warn("Failed to send suggestions notification")
		}
	}

	return &SuggestionsResponse{
		Suggestions:         suggestions,
		UserProfile:         profileOf(u),
		ExistingHabitsCount: len(habits),
	}, nil
}

func profileOf(u *user.User) ProfileSummary {
	return ProfileSummary{
		Age:             u.Age,
		FitnessLevel:    u.FitnessLevel,
		PrimaryGoal:     u.PrimaryGoal,
		MotivationLevel: u.MotivationLevel,
	}
}

// CategorySuggestions generates suggestions focused on one category and
// keeps only those the model actually tagged with it.
func (s *service) CategorySuggestions(ctx context.Context, category string, maxSuggestions int) (*CategorySuggestionsResponse, error) {
	if !validCategories[category] {
		return nil, fmt.Errorf("%w: category must be one of: fitness, nutrition, mental-health, sleep, lifestyle", ErrValidation)
	}

	u, habits, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if maxSuggestions <= 0 {
		maxSuggestions = 3
	}
	if maxSuggestions > 10 {
		maxSuggestions = 10
	}

	suggestions := s.generate(ctx, u, habits, maxSuggestions, category)
	matched := make([]Suggestion, 0, len(suggestions))
	for _, sug := range suggestions {
		if sug.Category == category {
			matched = append(matched, sug)
		}
	}

	return &CategorySuggestionsResponse{
		Category:    category,
		Suggestions: matched,
		UserProfile: profileOf(u),
	}, nil
}

func (s *service) GoalSuggestions(ctx context.Context, goal string, maxSuggestions int) (*GoalSuggestionsResponse, error) {
	if !validGoals[goal] {
		return nil, fmt.Errorf("%w: goal must be one of: weight-loss, muscle-gain, endurance, general-fitness", ErrValidation)
	}

	u, habits, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if maxSuggestions <= 0 {
		maxSuggestions = 5
	}
	if maxSuggestions > 10 {
		maxSuggestions = 10
	}

	return &GoalSuggestionsResponse{
		Goal:        goal,
		Suggestions: s.generate(ctx, u, habits, maxSuggestions, goal),
		UserProfile: profileOf(u),
		GoalAlignment: GoalAlignment{
			UserGoal:      u.PrimaryGoal,
			RequestedGoal: goal,
			IsAligned:     u.PrimaryGoal == goal,
		},
	}, nil
}

// CreateFromSuggestion turns an accepted suggestion into a regular habit.
// Creation time is stamped server-side; everything else goes through the
// habit service's validation, so the creation push fires there too.
func (s *service) CreateFromSuggestion(ctx context.Context, dto CreateFromSuggestionDTO) (*CreateFromSuggestionResponse, error) {
	created, err := s.habits.Create(ctx, habit.CreateHabitDTO{
		Name:        dto.Name,
		CreatedTime: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		TargetTime:  dto.TargetTime,
		IconID:      dto.IconID,
		Repeats:     dto.Repeats,
	})
	if err != nil {
		return nil, err
	}

	description := dto.Description
	if description == "" {
		description = "Habit created from AI suggestion"
	}
	return &CreateFromSuggestionResponse{
		Habit:       *created,
		Description: description,
	}, nil
}

// generate asks the model for suggestions and falls back to the static list
// on any provider or parse failure.
func (s *service) generate(ctx context.Context, u *user.User, habits []habit.Habit, maxSuggestions int, focusArea string) []Suggestion {
	log := config.WithContext(ctx)

	raw, err := s.provider.SendPrompt(ctx, systemPrompt, BuildSuggestionsPrompt(u, habits, maxSuggestions, focusArea))
	if err != nil {
		log.WithError(err).Warn("Suggestion generation failed, using fallback")
		return fallbackSuggestions()
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(stripFences(raw)), &suggestions); err != nil {
		log.WithError(err).Warn("Failed to decode suggestion response, using fallback")
		return fallbackSuggestions()
	}

	for i := range suggestions {
		applyDefaults(&suggestions[i])
	}

	log.Infof("Generated %d habit suggestions", len(suggestions))
	return suggestions
}

func applyDefaults(sug *Suggestion) {
	if sug.Name == "" {
		sug.Name = "Unnamed Habit"
	}
	if sug.Description == "" {
		sug.Description = "No description provided"
	}
	if sug.Repeats == nil {
		sug.Repeats = []int{0, 1, 2, 3, 4}
	}
	if sug.IconID == 0 {
		sug.IconID = 1
	}
	if sug.Difficulty == "" {
		sug.Difficulty = "beginner"
	}
	if sug.Category == "" {
		sug.Category = "lifestyle"
	}
	if sug.EstimatedDuration == 0 {
		sug.EstimatedDuration = 30
	}
	if len(sug.SuccessTips) == 0 {
		sug.SuccessTips = []string{"Start small and be consistent"}
	}
}

func (s *service) Analysis(ctx context.Context) (*Analysis, error) {
	log := config.WithContext(ctx)

	u, habits, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.SendPrompt(ctx, analysisSystemPrompt, BuildAnalysisPrompt(u, habits))
	if err != nil {
		log.WithError(err).Warn("Habit analysis failed, using fallback")
		return fallbackAnalysis(), nil
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &analysis); err != nil {
		log.WithError(err).Warn("Failed to decode analysis response, using fallback")
		return fallbackAnalysis(), nil
	}
	return &analysis, nil
}
