package commands

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/expense"
)

func addExpense(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Track expenses",
		Long:    "Track expenses.\n\nCategories: " + strings.Join(expense.Categories, ", "),
	}

	var filter expense.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.expenses()
			expenses, err := svc.List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Expenses(filter.Apply(expenses, svc.Now()))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only expenses whose name, category or notes contain this")
	list.Flags().StringVar(&filter.Type, "type", expense.FilterAll, "all, today, week, month or a category")

	var in expense.Input
	add := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Record an expense",
		Example: `
lifetrack expense add Lunch 50
lifetrack expense add Bus 10 --category "مواصلات" --date 2024-01-15`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			in.Name = args[0]
			if in.Amount, err = parseAmount(args[1]); err != nil {
				return app.HandleError(err)
			}
			expenses, err := app.expenses().Add(context.Background(), owner, in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Expenses(expenses)
			return nil
		},
	}
	add.Flags().StringVarP(&in.Category, "category", "c", expense.DefaultCategory, "one of the categories")
	add.Flags().StringVar(&in.Date, "date", "", "YYYY-MM-DD, defaults to today")
	add.Flags().StringVar(&in.Notes, "notes", "", "free text")

	var (
		edit   expense.Input
		amount string
	)
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.expenses()
			expenses, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(expenses, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "expense %q", args[0]))
			}
			edit.Amount = cur.Amount
			if amount != "" {
				if edit.Amount, err = parseAmount(amount); err != nil {
					return app.HandleError(err)
				}
			}
			if !cmd.Flags().Changed("name") {
				edit.Name = cur.Name
			}
			if !cmd.Flags().Changed("category") {
				edit.Category = cur.Category
			}
			if !cmd.Flags().Changed("date") {
				edit.Date = cur.Date
			}
			if !cmd.Flags().Changed("notes") {
				edit.Notes = cur.Notes
			}
			expenses, err = svc.Edit(ctx, owner, cur.ID, edit)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Expenses(expenses)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.Name, "name", "n", "", "new name")
	editCmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	editCmd.Flags().StringVarP(&edit.Category, "category", "c", "", "new category")
	editCmd.Flags().StringVar(&edit.Date, "date", "", "YYYY-MM-DD")
	editCmd.Flags().StringVar(&edit.Notes, "notes", "", "free text")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			expenses, err := app.expenses().Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Expenses(expenses)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Totals for today, this month and per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			st, err := app.expenses().Stats(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ExpenseStats(st)
			return nil
		},
	}

	cmd.AddCommand(list, add, editCmd, del, stats)
	topLevel.AddCommand(cmd)
}
