package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyUpdate_ClampsProgress(t *testing.T) {
	now := time.Now().UTC()

	p := LessonProgress{UserID: "u1", LessonID: 1}
	p.ApplyUpdate(150, 60, now)
	assert.Equal(t, float64(100), p.Progress)

	p2 := LessonProgress{UserID: "u1", LessonID: 2}
	p2.ApplyUpdate(-20, 60, now)
	assert.Equal(t, float64(0), p2.Progress)
}

func TestApplyUpdate_ProgressIsMonotonic(t *testing.T) {
	now := time.Now().UTC()
	p := LessonProgress{UserID: "u1", LessonID: 1}

	p.ApplyUpdate(60, 100, now)
	assert.Equal(t, float64(60), p.Progress)

	// A lower report never moves progress backwards
	p.ApplyUpdate(30, 50, now.Add(time.Minute))
	assert.Equal(t, float64(60), p.Progress)

	p.ApplyUpdate(80, 50, now.Add(2*time.Minute))
	assert.Equal(t, float64(80), p.Progress)
}

func TestApplyUpdate_TimeSpentAccumulates(t *testing.T) {
	now := time.Now().UTC()
	p := LessonProgress{UserID: "u1", LessonID: 1}

	p.ApplyUpdate(10, 120, now)
	p.ApplyUpdate(20, 180, now.Add(time.Minute))
	assert.Equal(t, int64(300), p.TimeSpent)

	// A negative delta is ignored, time spent only grows
	p.ApplyUpdate(20, -50, now.Add(2*time.Minute))
	assert.Equal(t, int64(300), p.TimeSpent)
}

func TestApplyUpdate_CompletionLatchesOnce(t *testing.T) {
	now := time.Now().UTC()
	p := LessonProgress{UserID: "u1", LessonID: 1}

	p.ApplyUpdate(50, 60, now)
	assert.False(t, p.Completed)
	assert.Nil(t, p.CompletedAt)

	// Crossing the threshold sets Completed and CompletedAt exactly once
	completionTime := now.Add(time.Minute)
	p.ApplyUpdate(95, 60, completionTime)
	assert.True(t, p.Completed)
	assert.NotNil(t, p.CompletedAt)
	assert.Equal(t, completionTime, *p.CompletedAt)

	// Later updates never move CompletedAt or revert Completed
	p.ApplyUpdate(100, 60, now.Add(time.Hour))
	assert.True(t, p.Completed)
	assert.Equal(t, completionTime, *p.CompletedAt)
}

func TestApplyUpdate_ThresholdBoundary(t *testing.T) {
	now := time.Now().UTC()

	p := LessonProgress{UserID: "u1", LessonID: 1}
	p.ApplyUpdate(89.9, 60, now)
	assert.False(t, p.Completed)

	p.ApplyUpdate(90, 60, now.Add(time.Minute))
	assert.True(t, p.Completed)
}

func TestApplyUpdate_RefreshesLastWatched(t *testing.T) {
	now := time.Now().UTC()
	p := LessonProgress{UserID: "u1", LessonID: 1}

	p.ApplyUpdate(10, 60, now)
	assert.Equal(t, now, p.LastWatched)

	later := now.Add(time.Hour)
	p.ApplyUpdate(10, 0, later)
	assert.Equal(t, later, p.LastWatched)
}
