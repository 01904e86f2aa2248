package snapshot

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/snapshot"
	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/internal/views"
)

func NewCmdSnapshot(s *state.State) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Record a snapshot of the catalog's data directory.",
		Long:    "Snapshot commits the current state of the data directory to a local history, so earlier catalog states can be inspected or restored with standard git tooling.",
		Example: `curio snapshot -m "before cleanup"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.DataDir == "" {
				return fmt.Errorf("no data directory configured, run 'curio init' first")
			}

			snapper, err := snapshot.Open(s.DataDir)
			if err != nil {
				return err
			}

			hash, err := snapper.Take(message)
			if errors.Is(err, snapshot.ErrNoChanges) {
				fmt.Println("Nothing to snapshot, no changes since the last one.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Snapshot %.12s recorded\n", hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message describing the snapshot.")

	cmd.AddCommand(newCmdSnapshotLog(s))

	return cmd
}

func newCmdSnapshotLog(s *state.State) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"history"},
		Short:   "Show recorded snapshots, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.DataDir == "" {
				return fmt.Errorf("no data directory configured, run 'curio init' first")
			}

			snapper, err := snapshot.Open(s.DataDir)
			if err != nil {
				return err
			}

			entries, err := snapper.History(limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No snapshots recorded yet.")
				return nil
			}

			r := views.NewRenderer(s.Catalog.Theme)
			for _, e := range entries {
				fmt.Println(r.SnapshotLine(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of snapshots to show.")

	return cmd
}
