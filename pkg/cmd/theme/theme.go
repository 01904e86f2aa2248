package theme

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/config"
	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdTheme(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "theme [name]",
		Short:   "Show or change the active catalog's theme.",
		Example: "curio theme dark",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Printf("Current theme: %s\n", s.Catalog.Theme)
				return nil
			}

			name := strings.ToLower(args[0])
			if err := s.Config.ChangeTheme(name); err != nil {
				return err
			}

			fmt.Printf("Theme changed to %s\n", name)
			return nil
		},
		ValidArgs: func() []string {
			names := make([]string, 0, len(config.ValidThemes))
			for name := range config.ValidThemes {
				names = append(names, name)
			}
			return names
		}(),
	}

	return cmd
}
