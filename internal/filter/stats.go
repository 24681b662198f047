package filter

import (
	"fmt"
	"leetcode_tracker/internal/domain/model"
	"math"
)

// Stats is the summary shown above the history list.
type Stats struct {
	Solved     int
	Attempted  int
	Total      int
	AvgMinutes int // rounded half up; 0 for an empty collection
}

func Summarize(problems []model.Problem) Stats {
	stats := Stats{Total: len(problems)}
	if len(problems) == 0 {
		return stats
	}

	sum := 0
	for _, p := range problems {
		switch p.Status {
		case model.StatusSolved:
			stats.Solved++
		case model.StatusAttempted:
			stats.Attempted++
		}
		sum += p.TimeTaken
	}
	stats.AvgMinutes = int(math.Floor(float64(sum)/float64(len(problems)) + 0.5))
	return stats
}

// FormatMinutes renders 75 as "1h 15m" and 42 as "42m".
func FormatMinutes(minutes int) string {
	if hours := minutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
