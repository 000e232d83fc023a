package commands

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/schedule"
)

var errBadAmount = errors.New("amount must be a number")

func parseAmount(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, core.NewValidationError(errBadAmount, core.FieldError{Field: "amount", Error: errBadAmount.Error()})
	}
	return f, nil
}

// scheduleSlot accepts an hour (0 to 23) for the slot starting then, or a slot label.
func scheduleSlot(s string) string {
	s = strings.TrimSpace(s)
	if h, err := strconv.Atoi(s); err == nil && h >= 0 && h < len(schedule.Slots) {
		return schedule.Slots[h]
	}
	return s
}

// scheduleDay accepts a day number (1 for the first day of the week) or a day name.
func scheduleDay(s string) string {
	s = strings.TrimSpace(s)
	if d, err := strconv.Atoi(s); err == nil && d >= 1 && d <= len(schedule.Days) {
		return schedule.Days[d-1]
	}
	return s
}
