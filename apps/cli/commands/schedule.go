package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/apps/cli/printers"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/schedule"
)

func scheduleLong() string {
	var b strings.Builder
	b.WriteString("Plan the week on a grid of 7 days by 24 one-hour slots. A slot holds one task.\n\nDays:\n")
	for i, d := range schedule.Days {
		b.WriteString(fmt.Sprintf("  %d  %s\n", i+1, d))
	}
	b.WriteString("\nSlots are given by their starting hour, 0 to 23, or by label.\n")
	return b.String()
}

func addSchedule(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the weekly schedule",
		Long:  scheduleLong(),
	}

	var filter schedule.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List schedule entries by day and time",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			entries, err := app.schedule().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			filter.Day = scheduleDay(filter.Day)
			app.pp.ScheduleEntries(filter.Apply(entries))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only entries whose task contains this")
	list.Flags().StringVar(&filter.Day, "day", "all", "all or a day")

	grid := &cobra.Command{
		Use:   "grid",
		Short: "Show the week as a grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			g, err := app.schedule().Grid(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Grid(g)
			return nil
		},
	}

	var in schedule.EntryInput
	add := &cobra.Command{
		Use:   "add TASK",
		Short: "Pin a task to a free slot",
		Example: `
lifetrack schedule add Gym --day 1 --slot 8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			if len(args) > 0 {
				in.Task = args[0]
			}
			in.Day = scheduleDay(in.Day)
			in.TimeSlot = scheduleSlot(in.TimeSlot)
			entries, err := app.schedule().Add(context.Background(), owner, in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ScheduleEntries(entries)
			return nil
		},
	}
	add.Flags().StringVarP(&in.Day, "day", "d", "", "day number or name")
	add.Flags().StringVarP(&in.TimeSlot, "slot", "s", "", "starting hour or slot label, defaults to 8")

	var edit schedule.EntryInput
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the task or move it to another free slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.schedule()
			entries, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(entries, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "schedule entry %q", args[0]))
			}
			if !cmd.Flags().Changed("task") {
				edit.Task = cur.Task
			}
			if !cmd.Flags().Changed("day") {
				edit.Day = cur.Day
			}
			if !cmd.Flags().Changed("slot") {
				edit.TimeSlot = cur.TimeSlot
			}
			edit.Day = scheduleDay(edit.Day)
			edit.TimeSlot = scheduleSlot(edit.TimeSlot)

			entries, err = svc.Edit(ctx, owner, cur.ID, edit)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ScheduleEntries(entries)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.Task, "task", "t", "", "new task")
	editCmd.Flags().StringVarP(&edit.Day, "day", "d", "", "day number or name")
	editCmd.Flags().StringVarP(&edit.TimeSlot, "slot", "s", "", "starting hour or slot label")

	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark an entry done, or pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			entries, err := app.schedule().ToggleCompleted(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ScheduleEntries(entries)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Free a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			entries, err := app.schedule().Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ScheduleEntries(entries)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count schedule entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			entries, err := app.schedule().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			st := schedule.Summarize(entries)
			app.pp.Stats("Weekly schedule",
				printers.Stat{Label: "Total", Value: st.Total},
				printers.Stat{Label: "Completed", Value: st.Completed},
				printers.Stat{Label: "Pending", Value: st.Pending},
			)
			return nil
		},
	}

	cmd.AddCommand(list, grid, add, editCmd, toggle, del, stats)
	topLevel.AddCommand(cmd)
}
