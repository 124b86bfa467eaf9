package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Xunop/aldiaa/internal/catalog"
	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/validator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List, add, edit and delete books",
	}
	cmd.AddCommand(
		newBooksListCmd(),
		newBooksAddCmd(),
		newBooksEditCmd(),
		newBooksDeleteCmd(),
	)
	return cmd
}

func newBooksListCmd() *cobra.Command {
	var (
		filters model.SearchFilters
		visible int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			view, err := a.catalog.View(cmd.Context(), filters, visible)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), view, a.catalog.PageSize())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&filters.Title, "title", "", "filter by title")
	flags.StringVar(&filters.Author, "author", "", "filter by author")
	flags.StringVar(&filters.Publisher, "publisher", "", "filter by publisher")
	flags.StringVar(&filters.PrintPlace, "print-place", "", "filter by print place")
	flags.StringVar(&filters.Editor, "editor", "", "filter by editor")
	flags.StringVar(&filters.Course, "course", "", "filter by course")
	flags.IntVar(&visible, "visible", 0, "how many books to show (default one page)")
	return cmd
}

func newBooksAddCmd() *cobra.Command {
	var (
		form  model.BookForm
		force bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.ValidateBookForm(&form); err != nil {
				return err
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			book, err := a.catalog.Create(cmd.Context(), form, force)
			var dup *catalog.DuplicateError
			if errors.As(err, &dup) {
				fmt.Fprintf(cmd.ErrOrStderr(), "A book titled %q already exists (%s). Use --force to add it anyway.\n",
					dup.Existing.Title, dup.Existing.ID)
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added book %s\n", book.ID)
			return nil
		},
	}
	form.Volumes = 1
	bindBookFlags(cmd.Flags(), &form)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "add even if the title already exists")
	return cmd
}

func newBooksEditCmd() *cobra.Command {
	var changes model.BookForm
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit the given fields of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			book, err := a.catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			form := mergeBookFlags(cmd.Flags(), book.Form(), changes)
			if err := validator.ValidateBookForm(&form); err != nil {
				return err
			}
			book, err = a.catalog.Update(cmd.Context(), args[0], form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated book %s\n", book.ID)
			return nil
		},
	}
	bindBookFlags(cmd.Flags(), &changes)
	return cmd
}

func newBooksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a book",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.catalog.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %s\n", args[0])
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the catalog totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.catalog.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Books: %d\nVolumes: %d\nAuthors: %d\n",
				stats.TotalBooks, stats.TotalVolumes, stats.TotalAuthors)
			return nil
		},
	}
}

func bindBookFlags(flags *pflag.FlagSet, form *model.BookForm) {
	flags.StringVar(&form.Title, "title", "", "title")
	flags.StringVar(&form.Author, "author", "", "author")
	flags.StringVar(&form.Editor, "editor", "", "editor")
	flags.StringVar(&form.Course, "course", "", "course")
	flags.IntVar(&form.Volumes, "volumes", form.Volumes, "number of volumes")
	flags.StringVar(&form.Publisher, "publisher", "", "publisher")
	flags.StringVar(&form.PrintPlace, "print-place", "", "print place")
	flags.StringVar(&form.Notes, "notes", "", "notes")
}

// mergeBookFlags overrides the fields of form whose flag was given.
func mergeBookFlags(flags *pflag.FlagSet, form, changes model.BookForm) model.BookForm {
	if flags.Changed("title") {
		form.Title = changes.Title
	}
	if flags.Changed("author") {
		form.Author = changes.Author
	}
	if flags.Changed("editor") {
		form.Editor = changes.Editor
	}
	if flags.Changed("course") {
		form.Course = changes.Course
	}
	if flags.Changed("volumes") {
		form.Volumes = changes.Volumes
	}
	if flags.Changed("publisher") {
		form.Publisher = changes.Publisher
	}
	if flags.Changed("print-place") {
		form.PrintPlace = changes.PrintPlace
	}
	if flags.Changed("notes") {
		form.Notes = changes.Notes
	}
	return form
}

func printView(out io.Writer, view *catalog.View, pageSize int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tVOLUMES\tPUBLISHER\tCOURSE\tADDED")
	for _, b := range view.Books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			b.ID, b.Title, b.Author, b.Volumes, b.Publisher, b.Course,
			time.UnixMilli(b.CreatedAt).Format(time.DateOnly))
	}
	w.Flush()

	fmt.Fprintf(out, "\nShowing %d of %d matching books (%d in total)\n", len(view.Books), view.Matched, view.Total)
	if view.HasMore {
		fmt.Fprintf(out, "Use --visible %d to show more\n", view.Visible+pageSize)
	}
}
