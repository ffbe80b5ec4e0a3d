package suggestion

import "time"

// fallbackSuggestions stands in whenever the model call or its parsing
// fails; the endpoint never surfaces provider errors to the client.
func fallbackSuggestions() []Suggestion {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Suggestion{
		{
			Name:              "Morning Stretching",
			Description:       "Gentle stretching to improve flexibility and start your day energized",
			TargetTime:        now,
			Repeats:           []int{0, 1, 2, 3, 4},
			IconID:            1,
			Difficulty:        "beginner",
			Category:          "fitness",
			EstimatedDuration: 15,
			SuccessTips:       []string{"Start with 5 minutes", "Do it right after waking up", "Focus on major muscle groups"},
		},
		{
			Name:              "Evening Walk",
			Description:       "Light walking to improve cardiovascular health and reduce stress",
			TargetTime:        now,
			Repeats:           []int{0, 1, 2, 3, 4, 5, 6},
			IconID:            2,
			Difficulty:        "beginner",
			Category:          "fitness",
			EstimatedDuration: 30,
			SuccessTips:       []string{"Start with 10 minutes", "Walk at a comfortable pace", "Enjoy the outdoors"},
		},
	}
}

func fallbackAnalysis() *Analysis {
	return &Analysis{
		Strengths:        []string{"You have some good habits established"},
		Gaps:             []string{"Consider adding more variety"},
		Recommendations:  []string{"Focus on consistency"},
		ConsistencyScore: 50,
		BalanceScore:     50,
	}
}
