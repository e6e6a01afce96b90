// Package record holds the date-keyed collection of fasting records for one
// user. A Store is owned by its caller; it is not safe for concurrent use.
package record

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"fasting/backend/internal/model"
)

const DateLayout = "2006-01-02"

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidHours = errors.New("hours must be between 0 and 24")
	ErrInvalidDate  = errors.New("date must be a calendar date in YYYY-MM-DD form")
)

type Store struct {
	records []model.FastingRecord
}

func NewStore(records ...model.FastingRecord) *Store {
	s := &Store{}
	for _, r := range records {
		s.Upsert(r)
	}
	return s
}

// Upsert replaces any record for r.Date and keeps the collection in ascending
// date order. Zero-padded ISO dates sort correctly as strings.
func (s *Store) Upsert(r model.FastingRecord) {
	s.records = s.without(r.Date)
	s.records = append(s.records, r)
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Date < s.records[j].Date
	})
}

func (s *Store) Patch(date string, patch model.RecordPatch) (model.FastingRecord, error) {
	for i := range s.records {
		if s.records[i].Date == date {
			s.records[i] = patch.Apply(s.records[i])
			return s.records[i], nil
		}
	}
	return model.FastingRecord{}, fmt.Errorf("%w: %s", ErrNotFound, date)
}

func (s *Store) Find(date string) (model.FastingRecord, bool) {
	for _, r := range s.records {
		if r.Date == date {
			return r, true
		}
	}
	return model.FastingRecord{}, false
}

// FindByMonth returns the records of the given calendar month (1-based) in
// ascending date order.
func (s *Store) FindByMonth(year, month int) []model.FastingRecord {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	out := make([]model.FastingRecord, 0)
	for _, r := range s.records {
		if strings.HasPrefix(r.Date, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// Remove deletes the record for date and reports whether one existed.
func (s *Store) Remove(date string) bool {
	before := len(s.records)
	s.records = s.without(date)
	return len(s.records) != before
}

func (s *Store) All() []model.FastingRecord {
	return append([]model.FastingRecord(nil), s.records...)
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) Reset() {
	s.records = nil
}

func (s *Store) without(date string) []model.FastingRecord {
	kept := s.records[:0:0]
	for _, r := range s.records {
		if r.Date != date {
			kept = append(kept, r)
		}
	}
	return kept
}

func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || hours < 0 || hours > 24 {
		return ErrInvalidHours
	}
	return nil
}

func ValidateDate(date string) error {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil || parsed.Format(DateLayout) != date {
		return ErrInvalidDate
	}
	return nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
