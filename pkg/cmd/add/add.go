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
package add

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/catalog"
	"github.com/Paintersrp/curio/internal/state"
)

func NewCmdAdd(s *state.State) *cobra.Command {
	var (
		kind        string
		description string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:     "add [name] [location]",
		Aliases: []string{"a"},
		Short:   "Add an object to the catalog.",
		Long: heredoc.Doc(`
			Add a file or URL to the catalog. Tags can be given with --tags or
			written inline in the name or description as #hashtags; both are
			attached to the new object.
		`),
		Example: heredoc.Doc(`
			curio add "chat.jpg" ~/photos/chat.jpg --kind image --tags animal
			curio add "article go #lecture" https://go.dev/blog/slices
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			obj, err := svc.AddObject(
				args[0],
				description,
				catalog.Kind(strings.ToLower(kind)),
				args[1],
				tags,
			)
			if err != nil {
				return err
			}

			fmt.Printf("Added %s (%s)\n", obj.Name, obj.ID)
			return nil
		},
	}

	cmd.Flags().
		StringVarP(&kind, "kind", "k", "other", "Object kind: image, video, audio, document, or other.")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the object.")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Tags to attach to the object.")

	return cmd
}
