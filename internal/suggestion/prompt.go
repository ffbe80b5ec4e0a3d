package suggestion

import (
	"fmt"
	"strings"

	"github.com/habitflow-app/habitflow-api/internal/habit"
	"github.com/habitflow-app/habitflow-api/internal/user"
)

const systemPrompt = `You are a professional fitness and wellness coach specializing in habit formation. Provide personalized, actionable habit suggestions based on user data. Always respond with valid JSON format.`

const analysisSystemPrompt = `You are a habit analysis expert. Provide insights about user's habit patterns. Always respond with valid JSON format.`

func bmiStatus(heightCm, weightKg float64) (float64, string) {
	if heightCm <= 0 {
		return 0, "unknown"
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	status := "normal"
	switch {
	case bmi < 18.5:
		status = "underweight"
	case bmi >= 30:
		status = "obese"
	case bmi >= 25:
		status = "overweight"
	}
	return bmi, status
}

func describeHabits(habits []habit.Habit) string {
	if len(habits) == 0 {
		return "(none yet)"
	}
	lines := make([]string, 0, len(habits))
	for _, h := range habits {
		lines = append(lines, fmt.Sprintf("- %s (%d days/week, time: %s)", h.Name, len(h.Repeats), h.TargetTime))
	}
	return strings.Join(lines, "\n")
}

func BuildSuggestionsPrompt(u *user.User, habits []habit.Habit, maxSuggestions int, focusArea string) string {
	bmi, status := bmiStatus(u.Height, u.Weight)

	return fmt.Sprintf(`Analyze the following user profile and existing habits to generate personalized habit suggestions.

USER PROFILE:
- Age: %d years old
- Gender: %s
- Height: %.0fcm, Weight: %.0fkg
- BMI: %.1f (%s)
- Fitness Level: %s
- Primary Goal: %s
- Motivation Level: %s
- Sleep Schedule: %s to %s
- Preferred Workout Time: %s
- Weekly Goal: %s sessions

EXISTING HABITS (%d):
%s

FOCUS AREA: %s
MAX SUGGESTIONS: %d

Generate %d personalized habit suggestions that:
1. Align with the user's fitness level and goals
2. Complement existing habits without conflicts
3. Consider the user's schedule and preferences
4. Are realistic and achievable
5. Include specific timing and frequency recommendations

For each suggestion provide: name, description, target_time (ISO format),
repeats (array of days 0-6, Monday=0), icon_id (1-10), difficulty
("beginner", "intermediate" or "advanced"), category ("fitness",
"nutrition", "mental-health", "sleep" or "lifestyle"), estimated_duration
(minutes per session) and success_tips (2-3 specific tips).

Respond with a valid JSON array only, no text outside the JSON.`,
		u.Age, u.Gender, u.Height, u.Weight, bmi, status,
		u.FitnessLevel, u.PrimaryGoal, u.MotivationLevel,
		u.WakeUpTime, u.SleepTime, u.PreferredWorkoutTime, u.WeeklyGoal,
		len(habits), describeHabits(habits),
		focusArea, maxSuggestions, maxSuggestions,
	)
}

func BuildAnalysisPrompt(u *user.User, habits []habit.Habit) string {
	lines := make([]string, 0, len(habits))
	for _, h := range habits {
		lines = append(lines, fmt.Sprintf("- %s (%d days/week)", h.Name, len(h.Repeats)))
	}

	return fmt.Sprintf(`Analyze the following user's habit patterns and provide insights:

USER PROFILE:
- Age: %d
- Fitness Level: %s
- Primary Goal: %s
- Motivation Level: %s

EXISTING HABITS:
%s

Provide analysis in JSON format:
{
  "strengths": ["strength1", "strength2"],
  "gaps": ["gap1", "gap2"],
  "recommendations": ["rec1", "rec2"],
  "consistency_score": 0-100,
  "balance_score": 0-100
}`,
		u.Age, u.FitnessLevel, u.PrimaryGoal, u.MotivationLevel,
		strings.Join(lines, "\n"),
	)
}
