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
package tag

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/internal/views"
)

func NewCmdTag(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags", "t"},
		Short:   "Manage tags on catalog objects.",
		Long:    ``,
		RunE:    newCmdTagList(s).RunE,
	}

	cmd.AddCommand(
		newCmdTagAdd(s),
		newCmdTagRemove(s),
		newCmdTagList(s),
		newCmdTagDelete(s),
	)

	return cmd
}

func newCmdTagAdd(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "add [id] [tag]...",
		Aliases: []string{"a"},
		Short:   "Attach tags to an object.",
		Example: "curio tag add 1_0000000000000042 animal plage",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			if err := svc.Tag(args[0], args[1:]...); err != nil {
				return err
			}

			fmt.Printf("Tagged %s\n", args[0])
			return nil
		},
	}
}

func newCmdTagRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "remove [id] [tag]",
		Aliases: []string{"rm"},
		Short:   "Detach a tag from an object.",
		Example: "curio tag rm 1_0000000000000042 animal",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			if err := svc.Untag(args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("Untagged %s\n", args[0])
			return nil
		},
	}
}

func newCmdTagList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tags with their member counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			snap, err := svc.AcquireSnapshot()
			if err != nil {
				return err
			}

			r := views.NewRenderer(s.Catalog.Theme)
			for _, name := range snap.TagNames() {
				fmt.Println(r.TagLine(name, len(snap.TagMembers(name))))
			}
			return nil
		},
	}
}

func newCmdTagDelete(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [tag]",
		Aliases: []string{"del"},
		Short:   "Delete a tag from every object that carries it.",
		Example: "curio tag delete animal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			if err := svc.DeleteTag(args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted tag %s\n", args[0])
			return nil
		},
	}
}
