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
	"github.com/trezcool/lifetrack/core/habit"
)

func addHabit(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Track habits week by week",
		Long:    "Track habits week by week.\n\nFrequencies: " + strings.Join(habit.Frequencies, ", "),
	}

	var filter habit.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List habits with this week's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.habits()
			habits, err := svc.List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Habits(filter.Apply(habits), svc.Now())
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only habits whose name contains this")
	list.Flags().StringVar(&filter.Frequency, "frequency", "all", "all or one of the frequencies")

	var in habit.Input
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Start tracking a habit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			if len(args) > 0 {
				in.Name = args[0]
			}
			svc := app.habits()
			habits, err := svc.Add(context.Background(), owner, in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Habits(habits, svc.Now())
			return nil
		},
	}
	add.Flags().StringVarP(&in.Description, "description", "d", "", "details")
	add.Flags().StringVarP(&in.Frequency, "frequency", "f", habit.DefaultFrequency, "one of the frequencies")
	add.Flags().StringVar(&in.TargetTime, "target-time", "", "HH:MM")
	add.Flags().StringVar(&in.StartDate, "start", "", "YYYY-MM-DD, defaults to today")

	var edit habit.Input
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.habits()
			habits, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(habits, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "habit %q", args[0]))
			}
			keep := map[string]*string{
				"name":        &cur.Name,
				"description": &cur.Description,
				"frequency":   &cur.Frequency,
				"target-time": &cur.TargetTime,
				"start":       &cur.StartDate,
			}
			dst := map[string]*string{
				"name":        &edit.Name,
				"description": &edit.Description,
				"frequency":   &edit.Frequency,
				"target-time": &edit.TargetTime,
				"start":       &edit.StartDate,
			}
			for flag, v := range keep {
				if !cmd.Flags().Changed(flag) {
					*dst[flag] = *v
				}
			}
			habits, err = svc.Edit(ctx, owner, cur.ID, edit)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Habits(habits, svc.Now())
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.Name, "name", "n", "", "new name")
	editCmd.Flags().StringVarP(&edit.Description, "description", "d", "", "new description")
	editCmd.Flags().StringVarP(&edit.Frequency, "frequency", "f", "", "new frequency")
	editCmd.Flags().StringVar(&edit.TargetTime, "target-time", "", "HH:MM")
	editCmd.Flags().StringVar(&edit.StartDate, "start", "", "YYYY-MM-DD")

	var date string
	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a habit done today (or on --date), or undo it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.habits()
			habits, err := svc.ToggleDate(context.Background(), owner, args[0], date)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Habits(habits, svc.Now())
			return nil
		},
	}
	toggle.Flags().StringVar(&date, "date", "", "YYYY-MM-DD, defaults to today")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Stop tracking a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.habits()
			habits, err := svc.Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Habits(habits, svc.Now())
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize this week",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			st, err := app.habits().Stats(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Stats("Habits",
				printers.Stat{Label: "Total", Value: st.Total},
				printers.Stat{Label: "Done today", Value: st.ActiveToday},
				printers.Stat{Label: "Average progress", Value: fmt.Sprintf("%d%%", st.AvgProgress)},
			)
			return nil
		},
	}

	cmd.AddCommand(list, add, editCmd, toggle, del, stats)
	topLevel.AddCommand(cmd)
}
