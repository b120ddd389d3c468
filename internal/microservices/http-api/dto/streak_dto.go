package dto

// DTOs for the learning streak endpoint

// CalendarDay is one entry of the 365-day activity heatmap.
type CalendarDay struct {
	Date  string `json:"date"`  // UTC calendar day, "2006-01-02"
	Count int    `json:"count"` // minutes spent that day
	Level int    `json:"level"` // 0-4 discretized activity
}

// Milestone is a named achievement unlocked at a streak-length threshold.
type Milestone struct {
	Days     int    `json:"days"`
	Name     string `json:"name"`
	Achieved bool   `json:"achieved"`
}

// StreakResponse: everything the streak dashboard renders in one payload.
type StreakResponse struct {
	CurrentStreak    int           `json:"current_streak"`
	LongestStreak    int           `json:"longest_streak"`
	LastLearningDate *string       `json:"last_learning_date"` // "2006-01-02" or null
	CalendarData     []CalendarDay `json:"calendar_data"`
	Milestones       []Milestone   `json:"milestones"`
}
