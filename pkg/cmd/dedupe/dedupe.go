package dedupe

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/dedupe"
	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/internal/views"
)

func NewCmdDedupe(s *state.State) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "dedupe [dir]",
		Aliases: []string{"dupes"},
		Short:   "Find duplicate files under a directory.",
		Long:    "Dedupe scans a directory tree for files with identical contents and reports each group with the space redundant copies occupy. Nothing is deleted.",
		Example: "curio dedupe ~/photos",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := dir
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				root = s.DataDir
			}
			if root == "" {
				return fmt.Errorf("no directory to scan, pass one or run 'curio init' first")
			}

			groups, err := dedupe.Scan(root)
			if err != nil {
				return err
			}

			if len(groups) == 0 {
				fmt.Println("No duplicates found.")
				return nil
			}

			r := views.NewRenderer(s.Catalog.Theme)
			var wasted int64
			for _, g := range groups {
				fmt.Println(r.DuplicateGroup(g))
				fmt.Println()
				wasted += g.Wasted()
			}
			fmt.Printf("%d duplicate group(s), %d bytes reclaimable\n", len(groups), wasted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan for duplicates.")

	return cmd
}
