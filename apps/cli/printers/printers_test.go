package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lifetrack/core/expense"
	"github.com/trezcool/lifetrack/core/reminder"
	"github.com/trezcool/lifetrack/core/schedule"
	"github.com/trezcool/lifetrack/core/todo"
)

func newPrinter(showID bool) (*PrettyPrint, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf, ShowID: showID}, &buf
}

func TestPrettyPrint_Todos(t *testing.T) {
	tests := []struct {
		name    string
		showID  bool
		todos   []todo.Todo
		want    []string
		notWant []string
	}{
		{name: "empty", want: []string{"To-dos - 0 items", "none"}},
		{
			name:    "hidden ids",
			todos:   []todo.Todo{{ID: "t-1", Title: "Buy milk", Completed: true}},
			want:    []string{"To-dos - 1 item", "TITLE", "Buy milk", "✓"},
			notWant: []string{"t-1"},
		},
		{
			name:   "shown ids",
			showID: true,
			todos:  []todo.Todo{{ID: "t-1", Title: "Buy milk"}, {ID: "t-2", Title: "Call mom"}},
			want:   []string{"2 items", "ID", "t-1", "t-2", "Call mom"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp, buf := newPrinter(tt.showID)
			pp.Todos(tt.todos)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestPrettyPrint_Reminders(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	pp, buf := newPrinter(false)
	pp.Reminders([]reminder.Reminder{
		{Title: "Pay rent", Date: "2024-01-01"},
		{Title: "Dentist", Date: "2024-01-02", Time: "18:00"},
		{Title: "Trip", Date: "2024-01-04"},
	}, now)

	out := buf.String()
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Pay rent"):
			assert.Contains(t, line, "overdue")
		case strings.Contains(line, "Dentist"):
			assert.Contains(t, line, "today")
		case strings.Contains(line, "Trip"):
			assert.Contains(t, line, "upcoming")
		}
	}
}

func TestPrettyPrint_ExpenseStats(t *testing.T) {
	pp, buf := newPrinter(false)
	pp.ExpenseStats(expense.Stats{
		Count: 2,
		Total: 60,
		Today: 60,
		ByCategory: []expense.CategoryTotal{
			{Category: "Food", Amount: 50, Percent: 83.3},
			{Category: "Transport", Amount: 10, Percent: 16.7},
		},
	})
	out := buf.String()
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "50.00 (83.3%)")
	assert.Contains(t, out, "10.00 (16.7%)")
}

func TestPrettyPrint_Grid(t *testing.T) {
	pp, buf := newPrinter(false)
	g := schedule.BuildGrid([]schedule.Entry{
		{ID: "1", Task: "Gym", Day: schedule.Days[0], TimeSlot: schedule.Slots[8]},
		{ID: "2", Task: "Lost", Day: schedule.Days[1], TimeSlot: "25:00"},
	})
	pp.Grid(g)

	out := buf.String()
	assert.Contains(t, out, "Gym")
	assert.Contains(t, out, schedule.ShortLabel(schedule.Slots[8]))
	assert.NotContains(t, out, schedule.ShortLabel(schedule.Slots[3]), "empty rows are skipped")
	assert.Contains(t, out, `cannot place "Lost"`)
}
