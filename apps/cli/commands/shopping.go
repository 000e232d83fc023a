package commands

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/apps/cli/printers"
	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/shopping"
)

type shoppingForm struct {
	in       shopping.Input
	quantity string
	image    string
}

// fill completes the form from the flags; a failed image upload is reported and skipped.
func (app *App) fillShopping(ctx context.Context, svc *shopping.Service, form *shoppingForm) error {
	if form.quantity != "" {
		form.in.Quantity = shopping.ParseQuantity(form.quantity)
	}
	if form.image == "" {
		return nil
	}
	f, err := media.ReadFile(form.image)
	if err != nil {
		return err
	}
	if err := svc.AttachImage(ctx, &form.in, f); err != nil {
		app.pp.Warn("image not attached: %v", app.HandleError(err))
	}
	return nil
}

func addShopping(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "shopping",
		Aliases: []string{"shop"},
		Short:   "Manage the shopping list",
		Long:    "Manage the shopping list.\n\nCategories: " + strings.Join(shopping.Categories, ", "),
	}

	var filter shopping.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List shopping items",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			items, err := app.shopping().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ShoppingItems(filter.Apply(items))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only items whose name contains this")
	list.Flags().StringVar(&filter.Status, "status", shopping.StatusAll, "all, bought or pending")

	var form shoppingForm
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item",
		Example: `
lifetrack shopping add Milk --quantity 2 --category "ألبان ومخبوزات"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			if len(args) > 0 {
				form.in.Name = args[0]
			}
			svc := app.shopping()
			if err := app.fillShopping(ctx, svc, &form); err != nil {
				return app.HandleError(err)
			}
			items, err := svc.Add(ctx, owner, form.in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ShoppingItems(items)
			return nil
		},
	}
	add.Flags().StringVarP(&form.quantity, "quantity", "q", "1", "how many; anything but a positive number means 1")
	add.Flags().StringVarP(&form.in.Category, "category", "c", shopping.DefaultCategory, "one of the categories")
	add.Flags().StringVar(&form.image, "image", "", "image file to attach")

	var (
		edit       shoppingForm
		clearImage bool
	)
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.shopping()
			items, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(items, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "shopping item %q", args[0]))
			}
			edit.in.Quantity = cur.Quantity
			edit.in.Image = cur.Image
			if !cmd.Flags().Changed("name") {
				edit.in.Name = cur.Name
			}
			if !cmd.Flags().Changed("category") {
				edit.in.Category = cur.Category
			}
			if clearImage {
				edit.in.Image = ""
			}
			if err := app.fillShopping(ctx, svc, &edit); err != nil {
				return app.HandleError(err)
			}
			items, err = svc.Edit(ctx, owner, cur.ID, edit.in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ShoppingItems(items)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.in.Name, "name", "n", "", "new name")
	editCmd.Flags().StringVarP(&edit.quantity, "quantity", "q", "", "new quantity")
	editCmd.Flags().StringVarP(&edit.in.Category, "category", "c", "", "new category")
	editCmd.Flags().StringVar(&edit.image, "image", "", "image file replacing the current one")
	editCmd.Flags().BoolVar(&clearImage, "clear-image", false, "remove the image")

	toggle := &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark an item bought, or pending again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			items, err := app.shopping().ToggleBought(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ShoppingItems(items)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			items, err := app.shopping().Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.ShoppingItems(items)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count shopping items",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			items, err := app.shopping().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			st := shopping.Summarize(items)
			app.pp.Stats("Shopping list",
				printers.Stat{Label: "Total", Value: st.Total},
				printers.Stat{Label: "Bought", Value: st.Bought},
				printers.Stat{Label: "Pending", Value: st.Pending},
			)
			return nil
		},
	}

	cmd.AddCommand(list, add, editCmd, toggle, del, stats)
	topLevel.AddCommand(cmd)
}
