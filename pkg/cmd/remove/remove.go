package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove [id]...",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove objects from the catalog.",
		Long:    "Remove deletes objects from the catalog, along with their tag and collection memberships. The files themselves are untouched.",
		Example: "curio rm 1_0000000000000042",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := svc.DeleteObject(id); err != nil {
					return fmt.Errorf("failed to remove %s: %w", id, err)
				}
				fmt.Printf("Removed %s\n", id)
			}

			return nil
		},
	}

	return cmd
}
