package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"datahub/internal/delivery/tui"
	"datahub/internal/domain"
	"datahub/internal/services"
)

// Deps bundles the constructed clients and services the commands use.
type Deps struct {
	Session     *services.Session
	Files       domain.FileClient
	Collections domain.CollectionClient
	Tags        domain.TagClient
	Users       domain.UserClient
	Logger      *slog.Logger
}

// NewRootCmd builds the datahub command tree. Running the root with no
// subcommand starts the interactive UI.
func NewRootCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "datahub",
		Short:        "Data-Hub terminal client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive UI
  datahub

  # Scriptable commands
  datahub login ana secret
  datahub files list
  datahub files create --filename report.pdf --tags "finance, q3"
  datahub collections set 3 --files "2, 4"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.Deps{
				Session:     deps.Session,
				Files:       deps.Files,
				Collections: deps.Collections,
				Tags:        deps.Tags,
				Logger:      deps.Logger,
			})
		},
	}

	cmd.AddCommand(newLoginCmd(deps))
	cmd.AddCommand(newRegisterCmd(deps))
	cmd.AddCommand(newLogoutCmd(deps))
	cmd.AddCommand(newWhoamiCmd(deps))
	cmd.AddCommand(newFilesCmd(deps))
	cmd.AddCommand(newCollectionsCmd(deps))
	cmd.AddCommand(newTagsCmd(deps))
	cmd.AddCommand(newUsersCmd(deps))

	return cmd
}
