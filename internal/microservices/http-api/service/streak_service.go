package service

import (
	"context"
	"math"
	"sort"
	"time"

	"learnhub/internal/microservices/http-api/dto"
	"learnhub/internal/microservices/http-api/models"
	"learnhub/internal/microservices/http-api/repository"
)

// All date bucketing uses UTC calendar days, not the user's local days.
// Mixing the two causes off-by-one streak errors around midnight.
const dateLayout = "2006-01-02"

// CalendarWindowDays is the fixed size of the activity heatmap.
const CalendarWindowDays = 365

// streakMilestones maps streak lengths to named badges.
var streakMilestones = []dto.Milestone{
	{Days: 7, Name: "Week Warrior"},
	{Days: 30, Name: "Monthly Master"},
	{Days: 100, Name: "Century Champion"},
	{Days: 365, Name: "Yearly Legend"},
}

type StreakService interface {
	GetLearningStreak(ctx context.Context, userID string) (*dto.StreakResponse, error)
}

type streakService struct {
	progressRepo repository.ProgressRepository
	now          func() time.Time
}

func NewStreakService(progressRepo repository.ProgressRepository) StreakService {
	return &streakService{
		progressRepo: progressRepo,
		now:          time.Now,
	}
}

// GetLearningStreak fetches one snapshot of the user's progress records and
// derives streak, calendar and milestone views from it. Deriving all three
// from the same snapshot keeps the displayed streak and heatmap consistent
// under concurrent writes.
func (s *streakService) GetLearningStreak(ctx context.Context, userID string) (*dto.StreakResponse, error) {
	records, err := s.progressRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current, longest, lastDate := computeStreak(records, now)

	return &dto.StreakResponse{
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastLearningDate: lastDate,
		CalendarData:     buildCalendar(records, now, CalendarWindowDays),
		Milestones:       evaluateMilestones(longest),
	}, nil
}

// activeDaysOf groups records into UTC calendar days. A day is active when
// any record last touched on it carries time spent or a completion.
func activeDaysOf(records []models.LessonProgress) map[string]bool {
	days := make(map[string]bool)
	for _, r := range records {
		if r.TimeSpent > 0 || r.Completed {
			days[r.LastWatched.UTC().Format(dateLayout)] = true
		}
	}
	return days
}

// computeStreak returns the current streak, the longest historical streak and
// the most recent active day.
//
// The current streak anchors on today, or on yesterday when today has no
// activity yet (the grace period: a streak is still live until the whole of
// today passes without learning). From the anchor it walks backward one day
// at a time while each day is active.
func computeStreak(records []models.LessonProgress, now time.Time) (current, longest int, lastDate *string) {
	days := activeDaysOf(records)
	if len(days) == 0 {
		return 0, 0, nil
	}

	today := now.UTC().Truncate(24 * time.Hour)

	// Anchor: today, or yesterday under the grace period.
	anchor := today
	if !days[anchor.Format(dateLayout)] {
		anchor = today.AddDate(0, 0, -1)
	}
	for days[anchor.Format(dateLayout)] {
		current++
		anchor = anchor.AddDate(0, 0, -1)
	}

	// Longest: scan distinct active days in chronological order, resetting
	// the run counter on any gap.
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	run := 0
	var prev time.Time
	for i, d := range dates {
		day, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	last := dates[len(dates)-1]
	return current, longest, &last
}

// buildCalendar produces exactly windowDays buckets spanning
// [today-(windowDays-1), today] in ascending order, one per day, with days
// lacking activity emitted as zero entries.
func buildCalendar(records []models.LessonProgress, now time.Time, windowDays int) []dto.CalendarDay {
	secondsByDay := make(map[string]int64)
	for _, r := range records {
		secondsByDay[r.LastWatched.UTC().Format(dateLayout)] += r.TimeSpent
	}

	today := now.UTC().Truncate(24 * time.Hour)
	calendar := make([]dto.CalendarDay, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(dateLayout)
		minutes := int(math.Round(float64(secondsByDay[day]) / 60))
		calendar = append(calendar, dto.CalendarDay{
			Date:  day,
			Count: minutes,
			Level: activityLevel(minutes),
		})
	}
	return calendar
}

// activityLevel discretizes minutes of daily activity into heatmap levels 0-4.
func activityLevel(minutes int) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes <= 30:
		return 1
	case minutes <= 60:
		return 2
	case minutes <= 120:
		return 3
	default:
		return 4
	}
}

// evaluateMilestones marks each fixed threshold achieved when the longest
// streak has reached it. Stateless, no I/O.
func evaluateMilestones(longestStreak int) []dto.Milestone {
	milestones := make([]dto.Milestone, len(streakMilestones))
	for i, m := range streakMilestones {
		milestones[i] = dto.Milestone{
			Days:     m.Days,
			Name:     m.Name,
			Achieved: longestStreak >= m.Days,
		}
	}
	return milestones
}
