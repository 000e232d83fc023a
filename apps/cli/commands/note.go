package commands

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/lifetrack/core"
	"github.com/trezcool/lifetrack/core/collection"
	"github.com/trezcool/lifetrack/core/media"
	"github.com/trezcool/lifetrack/core/note"
)

// readImages loads the files at paths. A file which cannot be read fails the command
// before anything is uploaded.
func readImages(paths []string) ([]media.File, error) {
	files := make([]media.File, 0, len(paths))
	for _, p := range paths {
		f, err := media.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// attach uploads files into in. Failed attachments are reported and skipped.
func (app *App) attach(ctx context.Context, svc *note.Service, in *note.Input, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	files, err := readImages(paths)
	if err != nil {
		return err
	}
	if err := svc.AttachImages(ctx, in, files...); err != nil {
		app.pp.Warn("image not attached: %v", app.HandleError(err))
	}
	return nil
}

func addNote(topLevel *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage daily notes and their images",
	}

	var filter note.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			notes, err := app.notes().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Notes(filter.Apply(notes))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "only notes whose title or content contains this")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print a note with its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			notes, err := app.notes().List(context.Background(), owner)
			if err != nil {
				return app.HandleError(err)
			}
			n, ok := collection.Find(notes, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "note %q", args[0]))
			}
			app.pp.Note(n)
			return nil
		},
	}

	var (
		in     note.Input
		images []string
	)
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a note",
		Example: `
lifetrack note add "Trip" --content "Day one at the beach" --image ~/Pictures/beach.jpg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			if len(args) > 0 {
				in.Title = args[0]
			}
			svc := app.notes()
			if err := app.attach(ctx, svc, &in, images); err != nil {
				return app.HandleError(err)
			}
			notes, err := svc.Add(ctx, owner, in)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Notes(notes)
			return nil
		},
	}
	add.Flags().StringVarP(&in.Content, "content", "c", "", "note body")
	add.Flags().StringSliceVarP(&images, "image", "i", nil, "image file to attach (repeatable)")

	var (
		edit      note.Input
		addImages []string
		removed   []int
	)
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a note, attach or remove images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			svc := app.notes()
			notes, err := svc.List(ctx, owner)
			if err != nil {
				return app.HandleError(err)
			}
			cur, ok := collection.Find(notes, args[0])
			if !ok {
				return app.HandleError(errors.Wrapf(core.ErrItemNotFound, "note %q", args[0]))
			}
			if !cmd.Flags().Changed("title") {
				edit.Title = cur.Title
			}
			if !cmd.Flags().Changed("content") {
				edit.Content = cur.Content
			}
			edit.Images = append([]string{}, cur.Images...)

			// highest index first so the others keep their position
			sort.Sort(sort.Reverse(sort.IntSlice(removed)))
			for _, idx := range removed {
				edit.RemoveImage(idx)
			}
			if err := app.attach(ctx, svc, &edit, addImages); err != nil {
				return app.HandleError(err)
			}

			notes, err = svc.Edit(ctx, owner, cur.ID, edit)
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Notes(notes)
			return nil
		},
	}
	editCmd.Flags().StringVarP(&edit.Title, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&edit.Content, "content", "c", "", "new body")
	editCmd.Flags().StringSliceVarP(&addImages, "image", "i", nil, "image file to attach (repeatable)")
	editCmd.Flags().IntSliceVar(&removed, "remove-image", nil, "index of an image to remove, as printed by show (repeatable)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := app.owner()
			if err != nil {
				return app.HandleError(err)
			}
			notes, err := app.notes().Delete(context.Background(), owner, args[0])
			if err != nil {
				return app.HandleError(err)
			}
			app.pp.Notes(notes)
			return nil
		},
	}

	cmd.AddCommand(list, show, add, editCmd, del)
	topLevel.AddCommand(cmd)
}
