/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Initialize the active catalog's data directory.",
		Long:    "This command sets up the data directory for the active catalog, creating it if needed.",
		Example: "curio init --dir ~/CurioData",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dataDir
			if dir == "" {
				dir = s.DefaultDataDir()
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}

			if err := s.Config.ChangeDataDir(dir); err != nil {
				return err
			}

			fmt.Printf("Catalog %q initialized with data directory %s\n", s.CatalogName, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataDir, "dir", "d", "", "Data directory for the catalog.")

	return cmd
}
