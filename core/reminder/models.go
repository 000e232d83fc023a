package reminder

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lifetrack/core"
)

var RepeatTypes = []string{"يومي", "أسبوعي", "شهري"}

var DefaultRepeatType = RepeatTypes[0]

// endOfDay is the due time of a reminder without a time.
const endOfDay = "23:59"

type Reminder struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Time        string     `json:"time"` // HH:MM, optional
	IsRecurring bool       `json:"isRecurring"`
	RepeatType  string     `json:"repeatType"` // empty unless IsRecurring
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (r Reminder) ItemID() string { return r.ID }

// Due returns the moment r is due in loc. A reminder without time is due at 23:59.
func (r Reminder) Due(loc *time.Location) (time.Time, error) {
	t := r.Time
	if t == "" {
		t = endOfDay
	}
	return time.ParseInLocation(core.DateLayout+" "+core.TimeLayout, r.Date+" "+t, loc)
}

// IsOverdue reports whether r is pending and its due moment has passed.
func IsOverdue(r Reminder, now time.Time) bool {
	if r.IsCompleted {
		return false
	}
	due, err := r.Due(now.Location())
	if err != nil {
		return false
	}
	return due.Before(now)
}

func IsToday(r Reminder, now time.Time) bool {
	return r.Date == core.FormatDate(now)
}

// IsUpcoming reports whether r falls 1 to 3 calendar days after now.
func IsUpcoming(r Reminder, now time.Time) bool {
	d, err := core.ParseDate(r.Date, now.Location())
	if err != nil {
		return false
	}
	today := core.StartOfDay(now)
	for i := 1; i <= 3; i++ {
		if d.Equal(today.AddDate(0, 0, i)) {
			return true
		}
	}
	return false
}

// Input is the add/edit form of a Reminder. Date defaults to today.
type Input struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Date        string `json:"date" validate:"required,isodate"`
	Time        string `json:"time" validate:"omitempty,hhmm"`
	IsRecurring bool   `json:"isRecurring"`
	RepeatType  string `json:"repeatType" validate:"omitempty,repeattype"`
	IsCompleted bool   `json:"isCompleted"`
}

func (in *Input) Validate(validate *validator.Validate, now time.Time) error {
	in.Title = core.CleanString(in.Title)
	in.Date = core.CleanString(in.Date)
	if in.Date == "" {
		in.Date = core.FormatDate(now)
	}
	in.Time = core.CleanString(in.Time)
	in.RepeatType = core.CleanString(in.RepeatType)
	switch {
	case !in.IsRecurring:
		in.RepeatType = ""
	case in.RepeatType == "":
		in.RepeatType = DefaultRepeatType
	}
	return validate.Struct(in)
}

// Filter types.
const (
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterPending   = "pending"
	FilterRecurring = "recurring"
	FilterToday     = "today"
)

type Filter struct {
	Search string
	Type   string
}

func (f Filter) Apply(reminders []Reminder, now time.Time) []Reminder {
	search := core.CleanString(f.Search)
	out := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		switch f.Type {
		case FilterCompleted:
			if !r.IsCompleted {
				continue
			}
		case FilterPending:
			if r.IsCompleted {
				continue
			}
		case FilterRecurring:
			if !r.IsRecurring {
				continue
			}
		case FilterToday:
			if !IsToday(r, now) {
				continue
			}
		}
		if search != "" && !core.ContainsFold(r.Title, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Today     int `json:"today"`
	Overdue   int `json:"overdue"`
}

func Summarize(reminders []Reminder, now time.Time) Stats {
	st := Stats{Total: len(reminders)}
	for _, r := range reminders {
		if r.IsCompleted {
			st.Completed++
		}
		if IsToday(r, now) {
			st.Today++
		}
		if IsOverdue(r, now) {
			st.Overdue++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}
