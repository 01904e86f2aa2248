package edit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/catalog"
	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdEdit(s *state.State) *cobra.Command {
	var (
		name        string
		description string
		kind        string
		location    string
	)

	cmd := &cobra.Command{
		Use:     "edit [id]",
		Aliases: []string{"e", "update"},
		Short:   "Edit an object's fields.",
		Long:    "Edit updates an object's name, description, kind, or location. Fields left unset keep their current value.",
		Example: `curio edit 1_0000000000000042 --name "chat noir" --location ~/photos/chat-noir.jpg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			snap, err := svc.AcquireSnapshot()
			if err != nil {
				return err
			}
			obj, ok := snap.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no object with id %s", args[0])
			}

			if name == "" {
				name = obj.Name
			}
			if !cmd.Flags().Changed("description") {
				description = obj.Description
			}
			newKind := obj.Kind
			if kind != "" {
				newKind = catalog.Kind(kind)
			}
			if location == "" {
				location = obj.Location
			}

			if err := svc.UpdateObject(args[0], name, description, newKind, location); err != nil {
				return err
			}

			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New name for the object.")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description for the object.")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "New kind for the object.")
	cmd.Flags().StringVarP(&location, "location", "l", "", "New location for the object.")

	return cmd
}
