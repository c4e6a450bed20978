package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"datahub/internal/domain"
	"datahub/internal/services"
)

func newCollectionsCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage collections",
	}
	cmd.AddCommand(newCollectionsListCmd(deps))
	cmd.AddCommand(newCollectionsCreateCmd(deps))
	cmd.AddCommand(newCollectionsSetCmd(deps))
	cmd.AddCommand(newCollectionsRmCmd(deps))
	return cmd
}

func newCollectionsListCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := deps.Collections.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cols {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s — %d files\n", c.ID, c.Name, len(c.Files))
			}
			return nil
		},
	}
}

func newCollectionsCreateCmd(deps *Deps) *cobra.Command {
	var (
		name   string
		userID int
		files  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("name is required")
			}
			if userID == 0 {
				user := deps.Session.Current()
				if user == nil {
					return fmt.Errorf("no session: pass --user or log in first")
				}
				userID = user.ID
			}
			created, err := deps.Collections.Create(cmd.Context(), domain.CollectionCreate{
				Name:    name,
				UserID:  userID,
				FileIDs: services.ParseIDList(files),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created collection %d (%s)\n", created.ID, created.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Collection name")
	cmd.Flags().IntVar(&userID, "user", 0, "Owner user id (defaults to the logged-in user)")
	cmd.Flags().StringVar(&files, "files", "", "Comma-separated file ids")
	return cmd
}

func newCollectionsSetCmd(deps *Deps) *cobra.Command {
	var (
		name  string
		files string
	)
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Rename a collection or replace its membership",
		Long: `Updates a collection. --files replaces the complete membership with the
given ids; omitted flags keep the current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid collection id %q", args[0])
			}

			// The update payload always carries the full desired state, so
			// fetch the current record to fill in whatever was not passed.
			cols, err := deps.Collections.List(cmd.Context())
			if err != nil {
				return err
			}
			var current *domain.Collection
			for i := range cols {
				if cols[i].ID == id {
					current = &cols[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("collection %d not found", id)
			}

			update := domain.CollectionUpdate{Name: current.Name}
			for _, f := range current.Files {
				update.FileIDs = append(update.FileIDs, f.ID)
			}
			if cmd.Flags().Changed("name") {
				update.Name = name
			}
			if cmd.Flags().Changed("files") {
				update.FileIDs = services.ParseIDList(files)
			}

			updated, err := deps.Collections.Update(cmd.Context(), id, update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated collection %d (%s, %d files)\n", updated.ID, updated.Name, len(updated.Files))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New collection name")
	cmd.Flags().StringVar(&files, "files", "", "Comma-separated file ids (full replacement)")
	return cmd
}

func newCollectionsRmCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid collection id %q", args[0])
			}
			if err := deps.Collections.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted collection %d\n", id)
			return nil
		},
	}
}
