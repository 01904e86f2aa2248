package list

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/catalog"
	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/internal/views"
)

func NewCmdList(s *state.State) *cobra.Command {
	var (
		since string
		until string
		kind  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog objects, optionally filtered by date or kind.",
		Long:    "List prints every object in the catalog. The --since and --until flags accept most common date formats and filter on creation time.",
		Example: `curio list --since "Jan 2024" --kind image`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			snap, err := svc.AcquireSnapshot()
			if err != nil {
				return err
			}

			objects := snap.Objects()

			if since != "" {
				t, err := dateparse.ParseAny(since)
				if err != nil {
					return fmt.Errorf("invalid --since date: %w", err)
				}
				filtered := objects[:0]
				for _, obj := range objects {
					if !obj.CreatedAt.Before(t) {
						filtered = append(filtered, obj)
					}
				}
				objects = filtered
			}

			if until != "" {
				t, err := dateparse.ParseAny(until)
				if err != nil {
					return fmt.Errorf("invalid --until date: %w", err)
				}
				filtered := objects[:0]
				for _, obj := range objects {
					if !obj.CreatedAt.After(t) {
						filtered = append(filtered, obj)
					}
				}
				objects = filtered
			}

			if kind != "" {
				want := catalog.Kind(strings.ToLower(kind))
				filtered := objects[:0]
				for _, obj := range objects {
					if obj.Kind == want {
						filtered = append(filtered, obj)
					}
				}
				objects = filtered
			}

			r := views.NewRenderer(s.Catalog.Theme)
			for _, obj := range objects {
				fmt.Println(r.ObjectLine(obj, snap.ObjectTags(obj.ID)))
			}
			fmt.Printf("\n%d object(s)\n", len(objects))
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only show objects created on or after this date.")
	cmd.Flags().StringVar(&until, "until", "", "Only show objects created on or before this date.")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only show objects of this kind.")

	return cmd
}
