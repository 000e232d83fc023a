package schedule

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

// Entry is one task pinned to a (day, time slot) of the weekly schedule.
type Entry struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Task        string     `json:"task"`
	Day         string     `json:"day"`
	TimeSlot    string     `json:"timeSlot"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (e Entry) ItemID() string { return e.ID }

// EntryInput is the add/edit form of an Entry.
type EntryInput struct {
	Task     string `json:"task" validate:"required,notblank,max=200"`
	Day      string `json:"day" validate:"required,scheduleday"`
	TimeSlot string `json:"timeSlot" validate:"required,scheduleslot"`
}

// Validate cleans the input and translates a legacy slot to its current label.
func (in *EntryInput) Validate(validate *validator.Validate) error {
	in.Task = core.CleanString(in.Task)
	in.Day = core.CleanString(in.Day)
	in.TimeSlot = core.CleanString(in.TimeSlot)
	if in.TimeSlot == "" {
		in.TimeSlot = DefaultSlot
	}
	if s, ok := Translate(in.TimeSlot); ok {
		in.TimeSlot = s
	}
	return validate.Struct(in)
}

// Filter narrows a listing; Day is "" or "all" for every day.
type Filter struct {
	Search string
	Day    string
}

// Apply returns the entries matching f, ordered by day then slot.
func (f Filter) Apply(entries []Entry) []Entry {
	search := core.CleanString(f.Search)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Day != "" && f.Day != "all" && e.Day != f.Day {
			continue
		}
		if search != "" && !core.ContainsFold(e.Task, search) {
			continue
		}
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

func sortEntries(entries []Entry) {
	rank := func(e Entry) int {
		d, ok := dayIndex[e.Day]
		if !ok {
			d = len(Days)
		}
		s := len(Slots)
		if slot, ok := Translate(e.TimeSlot); ok {
			s = slotIndex[slot]
		}
		return d*(len(Slots)+1) + s
	}
	sort.SliceStable(entries, func(i, j int) bool { return rank(entries[i]) < rank(entries[j]) })
}

// Stats summarizes the schedule.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

func Summarize(entries []Entry) Stats {
	st := Stats{Total: len(entries)}
	for _, e := range entries {
		if e.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}
