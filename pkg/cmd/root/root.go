package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/pkg/cmd/add"
	"github.com/Paintersrp/curio/pkg/cmd/catalogs"
	"github.com/Paintersrp/curio/pkg/cmd/collection"
	"github.com/Paintersrp/curio/pkg/cmd/copy"
	"github.com/Paintersrp/curio/pkg/cmd/dedupe"
	"github.com/Paintersrp/curio/pkg/cmd/edit"
	"github.com/Paintersrp/curio/pkg/cmd/initialize"
	"github.com/Paintersrp/curio/pkg/cmd/list"
	"github.com/Paintersrp/curio/pkg/cmd/remove"
	"github.com/Paintersrp/curio/pkg/cmd/search"
	"github.com/Paintersrp/curio/pkg/cmd/snapshot"
	"github.com/Paintersrp/curio/pkg/cmd/tag"
	"github.com/Paintersrp/curio/pkg/cmd/theme"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "curio",
		Short: "Catalog your files and URLs with tags, collections, and boolean search.",
		Long: `Curio keeps a local catalog of files and URLs, organized with tags and
collections, and searchable with boolean queries.

  curio search "chat AND #animal"
  curio search "(plage OR montagne) AND NOT hiver"
`,
		RunE: search.NewCmdSearch(s).RunE,
	}

	cmd.PersistentFlags().
		StringP(
			"catalog",
			"c",
			"",
			"Catalog to use for this command.",
		)
	viper.BindPFlag("catalog", cmd.PersistentFlags().Lookup("catalog"))

	// Add Child Commands to Root
	cmd.AddCommand(
		initialize.NewCmdInit(s),
		add.NewCmdAdd(s),
		edit.NewCmdEdit(s),
		remove.NewCmdRemove(s),
		tag.NewCmdTag(s),
		collection.NewCmdCollection(s),
		search.NewCmdSearch(s),
		list.NewCmdList(s),
		copy.NewCmdCopy(s),
		dedupe.NewCmdDedupe(s),
		snapshot.NewCmdSnapshot(s),
		theme.NewCmdTheme(s),
		catalogs.NewCmdCatalogs(s),
	)

	return cmd, nil
}
