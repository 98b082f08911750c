package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shift is a named time-of-day window ("Diurno", "Nocturno"...). Start and
// end are "HH:MM" strings; the window is half-open [start, end) and may wrap
// past midnight (e.g. 22:00 - 06:00).
type Shift struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      bool   `json:"status"`
	Audit
}

type ShiftDTO struct {
	Code        string `json:"code" binding:"required,min=1,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Status      *bool  `json:"status,omitempty"`
}

// CrossesMidnight reports whether the window wraps past 00:00.
func (s *Shift) CrossesMidnight() bool {
	start, err1 := MinutesOfDay(s.StartTime)
	end, err2 := MinutesOfDay(s.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	return end <= start
}

// Contains reports whether t (local wall-clock) falls inside the half-open
// window [start, end), handling windows that wrap past midnight.
func (s *Shift) Contains(t time.Time) bool {
	start, err1 := MinutesOfDay(s.StartTime)
	end, err2 := MinutesOfDay(s.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	if start < end {
		return m >= start && m < end
	}
	// wrapping window, e.g. 22:00 - 06:00
	return m >= start || m < end
}

// MinutesOfDay parses an "HH:MM" string into minutes since midnight.
func MinutesOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}
