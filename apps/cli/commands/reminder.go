package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/apps/cli/printers"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/reminder"
)

func addReminder(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "reminder",
		Aliases: []string{"reminders"},
		Short:   "Manage reminders",
	}

	var filter reminder.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List reminders, flagging overdue and upcoming ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.reminders()
			reminders, err := svc.List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			now := svc.Now()
			app.pp.Reminders(filter.Apply(reminders, now), now)
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only reminders whose title contains this")
	list.Flags().StringVar(&filter.Type, "type", reminder.FilterAll, "all, completed, pending, recurring or today")

	var in reminder.Input
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a reminder",
		Example: `
lifetrack reminder add "Pay rent" --date 2024-02-01
lifetrack reminder add "Standup" --time 09:30 --repeat "يومي"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			if len(args) > 0 {
				in.Title = args[0]
			}
			in.IsRecurring = in.RepeatType != ""
			svc := app.reminders()
			reminders, err := svc.Add(context.Background(), owner, in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Reminders(reminders, svc.Now())
			return nil
		},
	}
	add.Flags().StringVar(&in.Date, "date", "", "YYYY-MM-DD, defaults to today")
	add.Flags().StringVar(&in.Time, "time", "", "HH:MM, optional")
	add.Flags().StringVar(&in.RepeatType, "repeat", "", "make it recurring: one of the repeat types")

	var (
		edit     reminder.Input
		noRepeat bool
	)
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.reminders()
			reminders, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(reminders, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "reminder %q", args[0]))
			}
			if !cmd.Flags().Changed("title") {
				edit.Title = cur.Title
			}
			if !cmd.Flags().Changed("date") {
				edit.Date = cur.Date
			}
			if !cmd.Flags().Changed("time") {
				edit.Time = cur.Time
			}
			edit.IsRecurring = cur.IsRecurring
			if cmd.Flags().Changed("repeat") {
				edit.IsRecurring = true
			} else {
				edit.RepeatType = cur.RepeatType
			}
			if noRepeat {
				edit.IsRecurring = false
			}
			edit.IsCompleted = cur.IsCompleted

			reminders, err = svc.Edit(ctx, owner, cur.ID, edit)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Reminders(reminders, svc.Now())
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.Title, "title", "t", "", "new title")
	editCmd.Flags().StringVar(&edit.Date, "date", "", "YYYY-MM-DD")
	editCmd.Flags().StringVar(&edit.Time, "time", "", "HH:MM, empty for the end of the day")
	editCmd.Flags().StringVar(&edit.RepeatType, "repeat", "", "make it recurring: one of the repeat types")
	editCmd.Flags().BoolVar(&noRepeat, "no-repeat", false, "make it a one-off")

	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a reminder done, or pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.reminders()
			reminders, err := svc.ToggleCompleted(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Reminders(reminders, svc.Now())
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.reminders()
			reminders, err := svc.Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Reminders(reminders, svc.Now())
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			st, err := app.reminders().Stats(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Stats("Reminders",
				printers.Stat{Label: "Total", Value: st.Total},
				printers.Stat{Label: "Completed", Value: st.Completed},
				printers.Stat{Label: "Pending", Value: st.Pending},
				printers.Stat{Label: "Today", Value: st.Today},
				printers.Stat{Label: "Overdue", Value: st.Overdue},
			)
			return nil
		},
	}

	cmd.AddCommand(list, add, editCmd, toggle, del, stats)
	topLevel.AddCommand(cmd)
}
