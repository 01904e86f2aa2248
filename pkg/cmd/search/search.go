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
package search

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/fzf"
	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/internal/views"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s", "find"},
		Short:   "Search the catalog with a boolean query.",
		Long: heredoc.Doc(`
			Search evaluates a boolean query over the catalog. Terms combine with
			AND, OR, and NOT, and group with parentheses. A #tag term matches by
			exact tag, an @name term matches collections by name, "quoted" terms
			match object names exactly, and bare words match name fragments.

			An empty query lists the whole catalog. Queries never fail: anything
			unparseable falls back to a plain name search.
		`),
		Example: heredoc.Doc(`
			curio search "chat AND chien"
			curio search "(plage OR montagne) AND #photo NOT hiver"
			curio search "@Vacances 2024" -i
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.RequireService()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			results, err := svc.Search(query)
			if err != nil {
				return err
			}

			snap, err := svc.AcquireSnapshot()
			if err != nil {
				return err
			}

			if interactive {
				finder := fzf.NewFuzzyFinder("Search results", snap.ObjectTags)
				obj, err := finder.Run(results, "")
				if err != nil {
					return err
				}

				r := views.NewRenderer(s.Catalog.Theme)
				fmt.Println(r.ObjectDetail(
					obj,
					snap.ObjectTags(obj.ID),
					snap.ObjectCollections(obj.ID),
				))
				return nil
			}

			r := views.NewRenderer(s.Catalog.Theme)
			for _, obj := range results {
				fmt.Println(r.ObjectLine(obj, snap.ObjectTags(obj.ID)))
			}
			fmt.Printf("\n%d result(s)\n", len(results))
			return nil
		},
	}

	cmd.Flags().
		BoolVarP(&interactive, "interactive", "i", false, "Pick a result interactively and show its details.")

	return cmd
}
