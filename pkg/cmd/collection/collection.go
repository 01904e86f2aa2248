package collection

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/internal/views"
)

func NewCmdCollection(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"collections", "col"},
		Short:   "Manage named collections of objects.",
		Long:    ``,
		RunE:    newCmdCollectionList(s).RunE,
	}

	cmd.AddCommand(
		newCmdCollectionNew(s),
		newCmdCollectionRemove(s),
		newCmdCollectionAdd(s),
		newCmdCollectionDrop(s),
		newCmdCollectionList(s),
	)

	return cmd
}

func newCmdCollectionNew(s *state.State) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"n", "create"},
		Short:   "Create a collection.",
		Example: `curio collection new "Vacances 2024" -d "photos d'ete"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			col, err := svc.CreateCollection(args[0], description)
			if err != nil {
				return err
			}

			fmt.Printf("Created collection %s\n", col.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the collection.")

	return cmd
}

func newCmdCollectionRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [name]",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a collection. Its objects stay in the catalog.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			if err := svc.DeleteCollection(args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted collection %s\n", args[0])
			return nil
		},
	}
}

func newCmdCollectionAdd(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "add [name] [id]...",
		Aliases: []string{"a"},
		Short:   "Add objects to a collection.",
		Example: `curio collection add "Vacances 2024" 1_0000000000000042`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			if err := svc.AddToCollection(args[0], args[1:]...); err != nil {
				return err
			}

			fmt.Printf("Added %d object(s) to %s\n", len(args)-1, args[0])
			return nil
		},
	}
}

func newCmdCollectionDrop(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "drop [name] [id]",
		Short: "Remove an object from a collection.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			if err := svc.RemoveFromCollection(args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("Removed %s from %s\n", args[1], args[0])
			return nil
		},
	}
}

func newCmdCollectionList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all collections.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			snap, err := svc.AcquireSnapshot()
			if err != nil {
				return err
			}

			r := views.NewRenderer(s.Catalog.Theme)
			for _, col := range snap.Collections() {
				fmt.Println(r.CollectionLine(col, len(col.Members)))
			}
			return nil
		},
	}
}
