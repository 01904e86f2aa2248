package copy

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdCopy(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy [id]",
		Aliases: []string{"cp"},
		Short:   "Copy an object's location to the clipboard.",
		Example: "curio copy 1_0000000000000042",
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

			if err := clipboard.WriteAll(obj.Location); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			fmt.Printf("Copied location of %s\n", obj.Name)
			return nil
		},
	}

	return cmd
}
