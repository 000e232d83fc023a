package habit

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var Frequencies = []string{"يومي", "أسبوعي", "شهري"}

var DefaultFrequency = Frequencies[0]

type Habit struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"ownerId"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Frequency       string     `json:"frequency"`
	TargetTime      string     `json:"targetTime"` // HH:MM, optional
	StartDate       string     `json:"startDate"`  // YYYY-MM-DD
	CompletedDates  []string   `json:"completedDates"`
	LastCompletedAt *time.Time `json:"lastCompletedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (h Habit) ItemID() string { return h.ID }

// Normalize drops duplicate completion dates, keeping the first occurrence.
func (h *Habit) Normalize() {
	h.CompletedDates = dedup(h.CompletedDates)
}

// IsCompletedOn reports whether date (YYYY-MM-DD) is in the completion set.
func (h Habit) IsCompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// ToggleDate returns the completion set with date added, or removed if it was present.
// The result never holds duplicates.
func ToggleDate(dates []string, date string) []string {
	out := make([]string, 0, len(dates)+1)
	found := false
	for _, d := range dedup(dates) {
		if d == date {
			found = true
			continue
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, date)
	}
	return out
}

func dedup(dates []string) []string {
	if dates == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Input is the add/edit form of a Habit. StartDate defaults to today.
type Input struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Frequency   string `json:"frequency" validate:"required,habitfrequency"`
	TargetTime  string `json:"targetTime" validate:"omitempty,hhmm"`
	StartDate   string `json:"startDate" validate:"required,isodate"`
}

func (in *Input) Validate(validate *validator.Validate, now time.Time) error {
	in.Name = core.CleanString(in.Name)
	in.Description = core.CleanString(in.Description)
	in.Frequency = core.CleanString(in.Frequency)
	if in.Frequency == "" {
		in.Frequency = DefaultFrequency
	}
	in.TargetTime = core.CleanString(in.TargetTime)
	in.StartDate = core.CleanString(in.StartDate)
	if in.StartDate == "" {
		in.StartDate = core.FormatDate(now)
	}
	return validate.Struct(in)
}

// Filter narrows a listing; Frequency is "" or "all" for every frequency.
type Filter struct {
	Search    string
	Frequency string
}

func (f Filter) Apply(habits []Habit) []Habit {
	search := core.CleanString(f.Search)
	out := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if f.Frequency != "" && f.Frequency != "all" && h.Frequency != f.Frequency {
			continue
		}
		if search != "" && !core.ContainsFold(h.Name, search) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// WeekDates returns the 7 dates (YYYY-MM-DD) of the Sunday-start week holding now.
func WeekDates(now time.Time) []string {
	start := core.StartOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = core.FormatDate(start.AddDate(0, 0, i))
	}
	return dates
}

// WeeklyProgress is the share of this week's days on which h was completed, as a
// rounded percentage in [0, 100].
func WeeklyProgress(h Habit, now time.Time) int {
	done := 0
	for _, d := range WeekDates(now) {
		if h.IsCompletedOn(d) {
			done++
		}
	}
	return roundPercent(done, 7)
}

func roundPercent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(n)/float64(total)*100 + .5)
}

type Stats struct {
	Total       int `json:"total"`
	ActiveToday int `json:"active_today"`
	AvgProgress int `json:"avg_progress"`
}

func Summarize(habits []Habit, now time.Time) Stats {
	st := Stats{Total: len(habits)}
	if st.Total == 0 {
		return st
	}
	today := core.FormatDate(now)
	sum := 0
	for _, h := range habits {
		if h.IsCompletedOn(today) {
			st.ActiveToday++
		}
		sum += WeeklyProgress(h, now)
	}
	st.AvgProgress = int(float64(sum)/float64(st.Total) + .5)
	return st
}
