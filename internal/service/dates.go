package service

import (
	"strings"
	"time"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"

	"github.com/google/uuid"
)

// parseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// parseDateOr parses s, falling back to def when s is empty.
func parseDateOr(s string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return parseDate(s)
}

// ParseDateRange builds a repository range from optional from/to query values.
func ParseDateRange(from, to string) (repository.DateRange, error) {
	var r repository.DateRange
	if from != "" {
		t, err := parseDate(from)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if to != "" {
		t, err := parseDate(to)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return r, ErrDateRange
	}
	return r, nil
}

// periodBounds returns the first and last calendar day of a YYYY-MM period.
func periodBounds(period string) (time.Time, time.Time, error) {
	start, err := time.Parse(model.PeriodLayout, strings.TrimSpace(period))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// ParseOptionalID parses an optional uuid query value.
func ParseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, ErrInvalidID
	}
	return &id, nil
}

// timeNow is swapped in tests that need a fixed clock.
var timeNow = time.Now

// localToday is the current calendar date in loc, as UTC midnight (the form date columns are stored in).
func localToday(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	now := timeNow().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
