package suggestion

import "github.com/habitflow-app/habitflow-api/internal/habit"

// Suggestion is one AI-generated habit recommendation. Field defaults are
// applied after parsing so a partially valid model response still renders.
type Suggestion struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	TargetTime        string   `json:"target_time"`
	Repeats           []int    `json:"repeats"`
	IconID            int      `json:"icon_id"`
	Difficulty        string   `json:"difficulty"`
	Category          string   `json:"category"`
	EstimatedDuration int      `json:"estimated_duration"`
	SuccessTips       []string `json:"success_tips"`
}

// Analysis summarizes the user's habit patterns.
type Analysis struct {
	Strengths        []string `json:"strengths"`
	Gaps             []string `json:"gaps"`
	Recommendations  []string `json:"recommendations"`
	ConsistencyScore int      `json:"consistency_score"`
	BalanceScore     int      `json:"balance_score"`
}

type SuggestionsResponse struct {
	Suggestions         []Suggestion   `json:"suggestions"`
	UserProfile         ProfileSummary `json:"user_profile"`
	ExistingHabitsCount int            `json:"existing_habits_count"`
}

type ProfileSummary struct {
	Age             int    `json:"age"`
	FitnessLevel    string `json:"fitness_level"`
	PrimaryGoal     string `json:"primary_goal"`
	MotivationLevel string `json:"motivation_level"`
}

type CategorySuggestionsResponse struct {
	Category    string         `json:"category"`
	Suggestions []Suggestion   `json:"suggestions"`
	UserProfile ProfileSummary `json:"user_profile"`
}

type GoalAlignment struct {
	UserGoal      string `json:"user_goal"`
	RequestedGoal string `json:"requested_goal"`
	IsAligned     bool   `json:"is_aligned"`
}

type GoalSuggestionsResponse struct {
	Goal          string         `json:"goal"`
	Suggestions   []Suggestion   `json:"suggestions"`
	UserProfile   ProfileSummary `json:"user_profile"`
	GoalAlignment GoalAlignment  `json:"goal_alignment"`
}

// CreateFromSuggestionDTO carries a suggestion the user accepted; the habit
// fields pass through the regular habit validation.
type CreateFromSuggestionDTO struct {
	Name        string `json:"name"`
	TargetTime  string `json:"target_time"`
	IconID      *int   `json:"icon_id"`
	Repeats     []int  `json:"repeats"`
	Description string `json:"description"`
}

type CreateFromSuggestionResponse struct {
	Habit       habit.HabitResponse `json:"habit"`
	Description string              `json:"description"`
}
