// Package progress derives summary statistics from fasting records.
// Every function is pure and total: empty input yields zero values.
package progress

import (
	"math"
	"sort"
	"time"

	"fasting/backend/internal/model"
	"fasting/backend/internal/record"
)

type Summary struct {
	TotalFasts     int     `json:"totalFasts"`
	CompletedCount int     `json:"completedCount"`
	CompletionRate float64 `json:"completionRate"`
	AverageHours   float64 `json:"averageHours"`
	LongestFast    float64 `json:"longestFast"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
}

type DayStatus struct {
	Date      string  `json:"date"`
	Weekday   string  `json:"weekday"`
	Hours     float64 `json:"hours"`
	Completed bool    `json:"completed"`
}

func Summarize(records []model.FastingRecord, today time.Time) Summary {
	return Summary{
		TotalFasts:     len(records),
		CompletedCount: CompletedCount(records),
		CompletionRate: CompletionRate(records),
		AverageHours:   AverageHours(records),
		LongestFast:    LongestFast(records),
		CurrentStreak:  CurrentStreak(records, today),
		LongestStreak:  LongestStreak(records),
	}
}

func CompletedCount(records []model.FastingRecord) int {
	n := 0
	for _, r := range records {
		if r.Completed {
			n++
		}
	}
	return n
}

// AverageHours is the mean of Hours rounded to one decimal place.
func AverageHours(records []model.FastingRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Hours
	}
	return round1(sum / float64(len(records)))
}

func LongestFast(records []model.FastingRecord) float64 {
	var longest float64
	for _, r := range records {
		if r.Hours > longest {
			longest = r.Hours
		}
	}
	return longest
}

// CompletionRate is the whole-number percentage of completed records.
func CompletionRate(records []model.FastingRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return math.Round(float64(CompletedCount(records)) / float64(len(records)) * 100)
}

// CurrentStreak counts consecutive completed days ending at today, walking
// back one calendar day at a time until a day is missing or incomplete.
func CurrentStreak(records []model.FastingRecord, today time.Time) int {
	completed := completedDays(records)
	day := calendarDay(today)
	streak := 0
	for completed[record.FormatDate(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak is the longest run of consecutive completed calendar days
// anywhere in the history. Gaps in the collection break a run.
func LongestStreak(records []model.FastingRecord) int {
	days := make([]time.Time, 0, len(records))
	for date := range completedDays(records) {
		parsed, err := time.Parse(record.DateLayout, date)
		if err != nil {
			continue
		}
		days = append(days, parsed)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Week returns the seven days ending at today, oldest first.
func Week(records []model.FastingRecord, today time.Time) []DayStatus {
	byDate := make(map[string]model.FastingRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	end := calendarDay(today)
	week := make([]DayStatus, 0, 7)
	for i := 6; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		date := record.FormatDate(day)
		r := byDate[date]
		week = append(week, DayStatus{
			Date:      date,
			Weekday:   day.Weekday().String()[:3],
			Hours:     r.Hours,
			Completed: r.Completed,
		})
	}
	return week
}

func completedDays(records []model.FastingRecord) map[string]bool {
	days := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Completed {
			days[r.Date] = true
		}
	}
	return days
}

// calendarDay drops the clock part of t, keeping t's own calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
