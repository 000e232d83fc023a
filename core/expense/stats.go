package expense

import (
	"math"
	"sort"
	"time"

	"github.com/trezcool/lifetrack/core"
)

// Filter types besides a category name.
const (
	FilterAll   = "all"
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"
)

type Filter struct {
	Search string
	Type   string // all | today | week | month | <category>
}

// Apply returns the matching expenses, newest date first.
func (f Filter) Apply(expenses []Expense, now time.Time) []Expense {
	search := core.CleanString(f.Search)
	today := core.StartOfDay(now)
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, -1, 0)

	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if search != "" &&
			!core.ContainsFold(e.Name, search) &&
			!core.ContainsFold(e.Category, search) &&
			!core.ContainsFold(e.Notes, search) {
			continue
		}

		switch f.Type {
		case "", FilterAll:
		case FilterToday:
			if e.Date != core.FormatDate(now) {
				continue
			}
		case FilterWeek, FilterMonth:
			d, err := core.ParseDate(e.Date, now.Location())
			if err != nil {
				continue
			}
			from := weekAgo
			if f.Type == FilterMonth {
				from = monthAgo
			}
			if d.Before(from) || d.After(now) {
				continue
			}
		default:
			if e.Category != f.Type {
				continue
			}
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"` // of Stats.Total, 1 decimal
}

type Stats struct {
	Count      int             `json:"count"`
	Total      float64         `json:"total"`
	Today      float64         `json:"today"`
	Month      float64         `json:"month"` // current calendar month
	ByCategory []CategoryTotal `json:"by_category"`
}

// Summarize computes the expense statistics as of now.
func Summarize(expenses []Expense, now time.Time) Stats {
	st := Stats{Count: len(expenses)}
	today := core.FormatDate(now)
	monthPrefix := now.Format("2006-01")

	byCat := make(map[string]float64)
	order := make([]string, 0)
	for _, e := range expenses {
		st.Total += e.Amount
		if e.Date == today {
			st.Today += e.Amount
		}
		if len(e.Date) >= 7 && e.Date[:7] == monthPrefix {
			st.Month += e.Amount
		}
		if _, ok := byCat[e.Category]; !ok {
			order = append(order, e.Category)
		}
		byCat[e.Category] += e.Amount
	}

	st.ByCategory = make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		ct := CategoryTotal{Category: cat, Amount: byCat[cat]}
		if st.Total > 0 {
			ct.Percent = math.Round(ct.Amount/st.Total*1000) / 10
		}
		st.ByCategory = append(st.ByCategory, ct)
	}
	sort.SliceStable(st.ByCategory, func(i, j int) bool { return st.ByCategory[i].Amount > st.ByCategory[j].Amount })
	return st
}
