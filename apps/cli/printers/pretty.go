// Package printers renders the module listings of the command line client.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// PrettyPrint writes colored tables to Out.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

var (
	bold    = color.New(color.Bold)
	title   = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)
	none    = color.New(color.Faint, color.Italic)
	done    = color.New(color.FgGreen)
	warning = color.New(color.FgRed, color.Bold)
	accent  = color.New(color.FgHiYellow)
)

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out)
}

func (pp *PrettyPrint) Title(t string) {
	_, _ = title.Fprintln(pp.Out, t)
}

func (pp *PrettyPrint) TitleWithCount(t string, count int) {
	_, _ = title.Fprint(pp.Out, t)
	switch count {
	case 1:
		_, _ = faint.Fprintf(pp.Out, " - %d item\n", count)
	default:
		_, _ = faint.Fprintf(pp.Out, " - %d items\n", count)
	}
}

// Message prints a one line confirmation.
func (pp *PrettyPrint) Message(format string, args ...interface{}) {
	_, _ = done.Fprintf(pp.Out, format+"\n", args...)
}

func (pp *PrettyPrint) Warn(format string, args ...interface{}) {
	_, _ = warning.Fprintf(pp.Out, format+"\n", args...)
}

func (pp *PrettyPrint) empty() {
	_, _ = none.Fprint(pp.Out, " none\n\n")
}

// table starts a table whose header row is cols, prefixed by ID when ShowID is set.
func (pp *PrettyPrint) table(cols ...string) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	header := make([]interface{}, 0, len(cols)+1)
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	for _, c := range cols {
		header = append(header, bold.Sprint(c))
	}
	tbl.AddRow(header...)
	return tbl
}

func (pp *PrettyPrint) row(tbl *uitable.Table, id string, cells ...interface{}) {
	if pp.ShowID {
		cells = append([]interface{}{accent.Sprint(id)}, cells...)
	}
	tbl.AddRow(cells...)
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

// Stat is one labelled figure of a statistics block.
type Stat struct {
	Label string
	Value interface{}
}

// Stats prints a two column label / value block.
func (pp *PrettyPrint) Stats(t string, stats ...Stat) {
	pp.Title(t)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, st := range stats {
		tbl.AddRow(faint.Sprint(st.Label), st.Value)
	}
	tbl.RightAlign(1)
	pp.flush(tbl)
}

func check(ok bool) string {
	if ok {
		return done.Sprint("✓")
	}
	return " "
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
