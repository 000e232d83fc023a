package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/apps/cli/printers"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/todo"
)

func addTodo(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos"},
		Short:   "Manage to-do items",
	}

	var filter todo.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List to-dos",
		Example: `
lifetrack todo list
lifetrack todo list --status pending --search milk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			todos, err := app.todos().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Todos(filter.Apply(todos))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only items whose title or description contains this")
	list.Flags().StringVar(&filter.Status, "status", "all", "all, completed or pending")

	var in todo.Input
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a to-do",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			if len(args) > 0 {
				in.Title = args[0]
			}
			todos, err := app.todos().Add(context.Background(), owner, in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Todos(todos)
			return nil
		},
	}
	add.Flags().StringVarP(&in.Description, "description", "d", "", "details")

	var edit todo.Input
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the title or description of a to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.todos()
			todos, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(todos, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "todo %q", args[0]))
			}
			if !cmd.Flags().Changed("title") {
				edit.Title = cur.Title
			}
			if !cmd.Flags().Changed("description") {
				edit.Description = cur.Description
			}
			todos, err = svc.Edit(ctx, owner, cur.ID, edit)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Todos(todos)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.Title, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&edit.Description, "description", "d", "", "new description")

	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a to-do completed, or pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			todos, err := app.todos().ToggleCompleted(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Todos(todos)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			todos, err := app.todos().Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Todos(todos)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count to-dos",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			todos, err := app.todos().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			st := todo.Summarize(todos)
			app.pp.Stats("To-dos",
				printers.Stat{Label: "Total", Value: st.Total},
				printers.Stat{Label: "Completed", Value: st.Completed},
				printers.Stat{Label: "Pending", Value: st.Pending},
			)
			return nil
		},
	}

	cmd.AddCommand(list, add, editCmd, toggle, del, stats)
	topLevel.AddCommand(cmd)
}
