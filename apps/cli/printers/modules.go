package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/trezcool/lifetrack/core/expense"
	"github.com/trezcool/lifetrack/core/habit"
	"github.com/trezcool/lifetrack/core/note"
	"github.com/trezcool/lifetrack/core/reminder"
	"github.com/trezcool/lifetrack/core/schedule"
	"github.com/trezcool/lifetrack/core/shopping"
	"github.com/trezcool/lifetrack/core/todo"
)

const dateTimeLayout = "2006-01-02 15:04"

func (pp *PrettyPrint) Todos(todos []todo.Todo) {
	pp.TitleWithCount("To-dos", len(todos))
	if len(todos) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table("", "TITLE", "DESCRIPTION", "CREATED")
	for _, t := range todos {
		pp.row(tbl, t.ID, check(t.Completed), t.Title, truncate(t.Description, 40), t.CreatedAt.Local().Format(dateTimeLayout))
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Notes(notes []note.Note) {
	pp.TitleWithCount("Daily notes", len(notes))
	if len(notes) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table("TITLE", "CONTENT", "IMAGES", "UPDATED")
	for _, n := range notes {
		pp.row(tbl, n.ID, n.Title, truncate(n.Content, 50), len(n.Images), n.UpdatedAt.Local().Format(dateTimeLayout))
	}
	pp.flush(tbl)
}

// Note prints a single note with its image URLs, numbered for --remove-image.
func (pp *PrettyPrint) Note(n note.Note) {
	pp.Title(n.Title)
	if n.Content != "" {
		_, _ = fmt.Fprintln(pp.Out, n.Content)
	}
	for i, url := range n.Images {
		_, _ = faint.Fprintf(pp.Out, "[%d] %s\n", i, url)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) ShoppingItems(items []shopping.Item) {
	pp.TitleWithCount("Shopping list", len(items))
	if len(items) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table("", "NAME", "QTY", "CATEGORY", "IMAGE")
	for _, it := range items {
		image := ""
		if it.Image != "" {
			image = "yes"
		}
		pp.row(tbl, it.ID, check(it.Bought), it.Name, it.Quantity, it.Category, image)
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Habits(habits []habit.Habit, now time.Time) {
	pp.TitleWithCount("Habits", len(habits))
	if len(habits) == 0 {
		pp.empty()
		return
	}
	week := habit.WeekDates(now)
	tbl := pp.table("NAME", "FREQUENCY", "TARGET", "WEEK", "PROGRESS")
	for _, h := range habits {
		var marks strings.Builder
		for _, d := range week {
			if h.IsCompletedOn(d) {
				marks.WriteString(done.Sprint("●"))
			} else {
				marks.WriteString(faint.Sprint("○"))
			}
		}
		pp.row(tbl, h.ID, h.Name, h.Frequency, h.TargetTime, marks.String(), fmt.Sprintf("%d%%", habit.WeeklyProgress(h, now)))
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Reminders(reminders []reminder.Reminder, now time.Time) {
	pp.TitleWithCount("Reminders", len(reminders))
	if len(reminders) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table("", "TITLE", "DATE", "TIME", "REPEAT", "STATUS")
	for _, r := range reminders {
		status := ""
		switch {
		case reminder.IsOverdue(r, now):
			status = warning.Sprint("overdue")
		case reminder.IsToday(r, now) && !r.IsCompleted:
			status = accent.Sprint("today")
		case reminder.IsUpcoming(r, now) && !r.IsCompleted:
			status = "upcoming"
		}
		pp.row(tbl, r.ID, check(r.IsCompleted), r.Title, r.Date, r.Time, r.RepeatType, status)
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Expenses(expenses []expense.Expense) {
	pp.TitleWithCount("Expenses", len(expenses))
	if len(expenses) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table("DATE", "NAME", "CATEGORY", "AMOUNT", "NOTES")
	for _, e := range expenses {
		pp.row(tbl, e.ID, e.Date, e.Name, e.Category, fmt.Sprintf("%.2f", e.Amount), truncate(e.Notes, 30))
	}
	tbl.RightAlign(pp.offset(3))
	pp.flush(tbl)
}

func (pp *PrettyPrint) ExpenseStats(st expense.Stats) {
	pp.Stats("Expenses",
		Stat{"Count", st.Count},
		Stat{"Total", fmt.Sprintf("%.2f", st.Total)},
		Stat{"Today", fmt.Sprintf("%.2f", st.Today)},
		Stat{"This month", fmt.Sprintf("%.2f", st.Month)},
	)
	if len(st.ByCategory) == 0 {
		return
	}
	stats := make([]Stat, 0, len(st.ByCategory))
	for _, ct := range st.ByCategory {
		stats = append(stats, Stat{ct.Category, fmt.Sprintf("%.2f (%.1f%%)", ct.Amount, ct.Percent)})
	}
	pp.Stats("By category", stats...)
}

func (pp *PrettyPrint) ScheduleEntries(entries []schedule.Entry) {
	pp.TitleWithCount("Weekly schedule", len(entries))
	if len(entries) == 0 {
		pp.empty()
		return
	}
	tbl := pp.table("", "DAY", "TIME", "TASK")
	for _, e := range entries {
		pp.row(tbl, e.ID, check(e.Completed), e.Day, schedule.ShortLabel(e.TimeSlot), e.Task)
	}
	pp.flush(tbl)
}

// Grid prints the occupied rows of the weekly grid, one column per day.
// Entries which could not be placed are listed after it.
func (pp *PrettyPrint) Grid(g schedule.Grid) {
	pp.Title("Weekly schedule")
	tbl := pp.table(append([]string{"TIME"}, schedule.Days...)...)
	for _, slot := range schedule.Slots {
		cells := make([]interface{}, 0, len(schedule.Days)+1)
		cells = append(cells, schedule.ShortLabel(slot))
		busy := false
		for _, day := range schedule.Days {
			e, ok := g.At(day, slot)
			switch {
			case !ok:
				cells = append(cells, faint.Sprint("·"))
			case e.Completed:
				busy = true
				cells = append(cells, done.Sprint(truncate(e.Task, 14)))
			default:
				busy = true
				cells = append(cells, truncate(e.Task, 14))
			}
		}
		if busy {
			pp.row(tbl, "", cells...)
		}
	}
	if g.Len() == 0 {
		pp.empty()
	} else {
		pp.flush(tbl)
	}
	for _, e := range g.Unplaced {
		pp.Warn("cannot place %q (%s, %s) on the grid", e.Task, e.Day, e.TimeSlot)
	}
}

// offset shifts a column index past the ID column.
func (pp *PrettyPrint) offset(col int) int {
	if pp.ShowID {
		return col + 1
	}
	return col
}
