package catalogs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/config"
	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdCatalogs(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalogs",
		Aliases: []string{"catalog", "cat"},
		Short:   "Manage named catalogs.",
		Long:    "Each catalog has its own data directory and settings. The active catalog can be switched persistently here, or overridden per command with --catalog.",
		RunE:    newCmdCatalogsList(s).RunE,
	}

	cmd.AddCommand(
		newCmdCatalogsList(s),
		newCmdCatalogsUse(s),
		newCmdCatalogsNew(s),
		newCmdCatalogsRemove(s),
	)

	return cmd
}

func newCmdCatalogsList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalogs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range s.Config.CatalogNames() {
				marker := "  "
				if name == s.Config.CurrentCatalog {
					marker = "* "
				}
				cc := s.Config.Catalogs[name]
				if cc != nil && cc.DataDir != "" {
					fmt.Printf("%s%s (%s)\n", marker, name, cc.DataDir)
				} else {
					fmt.Printf("%s%s (uninitialized)\n", marker, name)
				}
			}
			return nil
		},
	}
}

func newCmdCatalogsUse(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "use [name]",
		Aliases: []string{"switch"},
		Short:   "Make a catalog the active one.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.SwitchCatalog(args[0]); err != nil {
				return err
			}

			fmt.Printf("Switched to catalog %s\n", args[0])
			return nil
		},
	}
}

func newCmdCatalogsNew(s *state.State) *cobra.Command {
	var (
		dataDir string
		use     bool
	)

	cmd := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"create"},
		Short:   "Create a catalog.",
		Example: "curio catalogs new archive --dir ~/ArchiveData --use",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := &config.CatalogConfig{DataDir: dataDir}
			if err := s.Config.AddCatalog(args[0], cc, use); err != nil {
				return err
			}

			fmt.Printf("Created catalog %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataDir, "dir", "d", "", "Data directory for the new catalog.")
	cmd.Flags().BoolVarP(&use, "use", "u", false, "Switch to the new catalog immediately.")

	return cmd
}

func newCmdCatalogsRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [name]",
		Aliases: []string{"rm"},
		Short:   "Remove a catalog from the configuration. Its data directory is untouched.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.RemoveCatalog(args[0]); err != nil {
				return err
			}

			fmt.Printf("Removed catalog %s\n", args[0])
			return nil
		},
	}
}
