package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateZeroCounts(t *testing.T) {
	got := Calculate(Counts{})
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, 0.0, got.CompletionRate)
	assert.Equal(t, "Bajo", got.Level)
}

func TestCalculate(t *testing.T) {
	got := Calculate(Counts{
		TasksCompleted:        8,
		TasksCreated:          10,
		RoutinesFollowed:      5,
		RemindersAcknowledged: 3,
	})
	// 0.8*40 + 5*2 + 3 = 45
	assert.Equal(t, 45.0, got.Score)
	assert.Equal(t, 80.0, got.CompletionRate)
	assert.Equal(t, "Moderado", got.Level)
}

func TestCalculateClampedAt100(t *testing.T) {
	got := Calculate(Counts{
		TasksCompleted:        10,
		TasksCreated:          10,
		RoutinesFollowed:      40,
		RemindersAcknowledged: 50,
	})
	assert.Equal(t, 100.0, got.Score)
	assert.Equal(t, "Excelente", got.Level)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		counts Counts
		level  string
	}{
		{Counts{RemindersAcknowledged: 39}, "Bajo"},
		{Counts{RemindersAcknowledged: 40}, "Moderado"},
		{Counts{RemindersAcknowledged: 60}, "Bueno"},
		{Counts{RemindersAcknowledged: 80}, "Excelente"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, Calculate(tt.counts).Level, "counts %+v", tt.counts)
	}
}
