package collection

// Sub-collection names, one per module.
const (
	Todos          = "todos"
	DailyNotes     = "dailyNotes"
	ShoppingItems  = "shoppingItems"
	Habits         = "habits"
	Reminders      = "reminders"
	Expenses       = "expenses"
	WeeklySchedule = "weeklySchedule"
)

var Names = []string{Todos, DailyNotes, ShoppingItems, Habits, Reminders, Expenses, WeeklySchedule}

// IsValid reports whether name is a known sub-collection.
func IsValid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
