package notification

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canned notification payloads. Wording mirrors what the mobile apps ship
// with, so changes here must stay in sync with the clients.

func HabitCreated(habitID, habitName string) Notification {
	return Notification{
		Title:   "New Habit Created! 🎉",
		Body:    fmt.Sprintf("Great job! You've started tracking \"%s\". Consistency is key!", habitName),
		Type:    "habit_created",
		HabitID: habitID,
		Data:    map[string]string{"habitName": habitName},
	}
}

func HabitCompleted(habitID, habitName string, streak int) Notification {
	return Notification{
		Title:   "Habit Completed! ✅",
		Body:    fmt.Sprintf("\"%s\" is done for today. You're on a %d-day streak!", habitName, streak),
		Type:    "habit_completed",
		HabitID: habitID,
		Data: map[string]string{
			"habitName": habitName,
			"streak":    strconv.Itoa(streak),
		},
	}
}

func DailyReminder(habitNames []string) Notification {
	return Notification{
		Title: "Good Morning! ☀️",
		Body:  fmt.Sprintf("You have %d habits scheduled for today: %s", len(habitNames), strings.Join(habitNames, ", ")),
		Type:  "daily_reminder",
		Data:  map[string]string{"habitCount": strconv.Itoa(len(habitNames))},
	}
}

func IncompleteReminder(habitNames []string) Notification {
	return Notification{
		Title: "Don't Forget Your Habits! 🌙",
		Body:  fmt.Sprintf("You still have %d habits to complete today. Finish strong!", len(habitNames)),
		Type:  "incomplete_reminder",
		Data:  map[string]string{"habitCount": strconv.Itoa(len(habitNames))},
	}
}

func HabitTimeReminder(habitID, habitName, targetTime string) Notification {
	return Notification{
		Title:   fmt.Sprintf("Time for \"%s\"! ⏰", habitName),
		Body:    "It's time to complete your habit. Don't let this moment slip away!",
		Type:    "habit_reminder",
		HabitID: habitID,
		Data: map[string]string{
			"habitName":  habitName,
			"targetTime": targetTime,
		},
	}
}

func StreakAtRisk(habitID, habitName string, currentStreak int) Notification {
	return Notification{
		Title:   "Your Streak is at Risk! ⚠️",
		Body:    fmt.Sprintf("Don't break your %d-day streak with \"%s\"! Complete it now!", currentStreak, habitName),
		Type:    "streak_at_risk",
		HabitID: habitID,
		Data: map[string]string{
			"currentStreak": strconv.Itoa(currentStreak),
			"habitName":     habitName,
		},
	}
}

func Milestone(habitID, habitName string, milestone int) Notification {
	return Notification{
		Title:   fmt.Sprintf("%d Day Milestone! 🏆", milestone),
		Body:    fmt.Sprintf("Congratulations! You've maintained \"%s\" for %d days! You're unstoppable!", habitName, milestone),
		Type:    "milestone",
		HabitID: habitID,
		Data: map[string]string{
			"milestone": strconv.Itoa(milestone),
			"habitName": habitName,
		},
	}
}

func WeeklyProgress(completed, total, rate int) Notification {
	return Notification{
		Title: "Weekly Progress Report 📊",
		Body:  fmt.Sprintf("You completed %d/%d habits this week (%d%% success rate)!", completed, total, rate),
		Type:  "weekly_progress",
		Data: map[string]string{
			"completedHabits": strconv.Itoa(completed),
			"totalHabits":     strconv.Itoa(total),
			"completionRate":  strconv.Itoa(rate),
		},
	}
}

func Motivation(message string) Notification {
	return Notification{
		Title: "Motivation Boost! 💪",
		Body:  message,
		Type:  "motivation",
		Data: map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func PersonalizedSuggestions(count int, categories []string) Notification {
	return Notification{
		Title: "Personalized Habit Suggestions! 🎯",
		Body:  fmt.Sprintf("We've found %d new habits perfect for your goals. Check them out!", count),
		Type:  "personalized_suggestions",
		Data: map[string]string{
			"suggestionCount": strconv.Itoa(count),
			"categories":      strings.Join(categories, ","),
		},
	}
}
