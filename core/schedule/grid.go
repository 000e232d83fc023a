package schedule

import "strings"

// Days of the week, starting on Saturday.
var Days = []string{"السبت", "الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة"}

// Slots are the 24 one-hour labels of a day, "ص" for AM and "م" for PM.
var Slots = []string{
	"12:00 ص - 1:00 ص",
	"1:00 ص - 2:00 ص",
	"2:00 ص - 3:00 ص",
	"3:00 ص - 4:00 ص",
	"4:00 ص - 5:00 ص",
	"5:00 ص - 6:00 ص",
	"6:00 ص - 7:00 ص",
	"7:00 ص - 8:00 ص",
	"8:00 ص - 9:00 ص",
	"9:00 ص - 10:00 ص",
	"10:00 ص - 11:00 ص",
	"11:00 ص - 12:00 م",
	"12:00 م - 1:00 م",
	"1:00 م - 2:00 م",
	"2:00 م - 3:00 م",
	"3:00 م - 4:00 م",
	"4:00 م - 5:00 م",
	"5:00 م - 6:00 م",
	"6:00 م - 7:00 م",
	"7:00 م - 8:00 م",
	"8:00 م - 9:00 م",
	"9:00 م - 10:00 م",
	"10:00 م - 11:00 م",
	"11:00 م - 12:00 ص",
}

// DefaultSlot is preselected for new entries.
var DefaultSlot = Slots[8]

// legacySlots maps the old "start\end" hour labels (8am to 8pm) to current labels.
var legacySlots = map[string]string{
	`8\9`:   Slots[8],
	`9\10`:  Slots[9],
	`10\11`: Slots[10],
	`11\12`: Slots[11],
	`12\1`:  Slots[12],
	`1\2`:   Slots[13],
	`2\3`:   Slots[14],
	`3\4`:   Slots[15],
	`4\5`:   Slots[16],
	`5\6`:   Slots[17],
	`6\7`:   Slots[18],
	`7\8`:   Slots[19],
}

var (
	slotIndex = indexOf(Slots)
	dayIndex  = indexOf(Days)
)

func indexOf(values []string) map[string]int {
	m := make(map[string]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}

// IsDay reports whether day is one of Days.
func IsDay(day string) bool {
	_, ok := dayIndex[day]
	return ok
}

// IsSlot reports whether slot is one of the current Slots.
func IsSlot(slot string) bool {
	_, ok := slotIndex[slot]
	return ok
}

// Translate returns the current label for slot. Current labels map to themselves and
// legacy labels to their current equivalent; anything else is not translatable.
func Translate(slot string) (string, bool) {
	if IsSlot(slot) {
		return slot, true
	}
	if s, ok := legacySlots[slot]; ok {
		return s, true
	}
	return "", false
}

// ShortLabel returns the start time of slot, e.g. "8:00 ص".
func ShortLabel(slot string) string {
	if s, ok := Translate(slot); ok {
		slot = s
	}
	if i := strings.Index(slot, " - "); i >= 0 {
		return slot[:i]
	}
	return slot
}

// Grid is the 7x24 weekly view: Cells[day][slot] is the entry at that position, or nil.
type Grid struct {
	Cells map[string]map[string]*Entry
	// Unplaced holds entries which could not be positioned: unknown day, untranslatable
	// slot, or a cell already occupied.
	Unplaced []Entry
}

// At returns the entry at (day, slot); slot may be a legacy label.
func (g Grid) At(day, slot string) (Entry, bool) {
	s, ok := Translate(slot)
	if !ok {
		return Entry{}, false
	}
	if e := g.Cells[day][s]; e != nil {
		return *e, true
	}
	return Entry{}, false
}

// Len returns the number of placed entries.
func (g Grid) Len() int {
	var n int
	for _, row := range g.Cells {
		for _, e := range row {
			if e != nil {
				n++
			}
		}
	}
	return n
}

// BuildGrid places entries on a fresh 7x24 grid. The first entry of a cell wins.
func BuildGrid(entries []Entry) Grid {
	g := Grid{Cells: make(map[string]map[string]*Entry, len(Days))}
	for _, day := range Days {
		row := make(map[string]*Entry, len(Slots))
		for _, slot := range Slots {
			row[slot] = nil
		}
		g.Cells[day] = row
	}

	for i := range entries {
		e := entries[i]
		slot, ok := Translate(e.TimeSlot)
		row, known := g.Cells[e.Day]
		if !ok || !known || row[slot] != nil {
			g.Unplaced = append(g.Unplaced, e)
			continue
		}
		row[slot] = &e
	}
	return g
}

// CanPlace reports whether (day, slot) is free, ignoring the entry excludeID.
// Slots are compared by their current label so a legacy entry blocks its equivalent.
func CanPlace(entries []Entry, day, slot, excludeID string) bool {
	want, ok := Translate(slot)
	if !ok {
		want = slot
	}
	for _, e := range entries {
		if e.ID == excludeID && excludeID != "" {
			continue
		}
		if e.Day != day {
			continue
		}
		have, ok := Translate(e.TimeSlot)
		if !ok {
			have = e.TimeSlot
		}
		if have == want {
			return false
		}
	}
	return true
}
