package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"datahub/internal/domain"
	"datahub/internal/services"
)

func newFilesCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage files",
	}
	cmd.AddCommand(newFilesListCmd(deps))
	cmd.AddCommand(newFilesGetCmd(deps))
	cmd.AddCommand(newFilesCreateCmd(deps))
	cmd.AddCommand(newFilesRmCmd(deps))
	cmd.AddCommand(newFilesTagCmd(deps))
	return cmd
}

func newFilesListCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := deps.Files.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), formatFile(f))
			}
			return nil
		},
	}
}

func newFilesGetCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}
			f, err := deps.Files.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatFile(*f))
			return nil
		},
	}
}

func newFilesCreateCmd(deps *Deps) *cobra.Command {
	var (
		filename    string
		description string
		tags        string
		userID      int
		path        string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Upload a new file (or a metadata-only record)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path != "" && filename == "" {
				filename = filepath.Base(path)
			}
			if filename == "" {
				return fmt.Errorf("filename is required")
			}
			if userID == 0 {
				user := deps.Session.Current()
				if user == nil {
					return fmt.Errorf("no session: pass --user or log in first")
				}
				userID = user.ID
			}

			upload := domain.FileUpload{
				UserID:      userID,
				Filename:    filename,
				Description: description,
				Tags:        services.SplitTags(tags),
			}
			if path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				defer f.Close()
				upload.Content = f
			}

			created, err := deps.Files.Create(cmd.Context(), upload)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created file %d (%s)\n", created.ID, created.Filename)
			return nil
		},
	}
	cmd.Flags().StringVar(&filename, "filename", "", "Filename for the record (defaults to the uploaded file's name)")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().IntVar(&userID, "user", 0, "Owner user id (defaults to the logged-in user)")
	cmd.Flags().StringVar(&path, "file", "", "Path to a local file to upload")
	return cmd
}

func newFilesRmCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}
			if err := deps.Files.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted file %d\n", id)
			return nil
		},
	}
}

func newFilesTagCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> <name>",
		Short: "Attach a tag to a file, creating the tag if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("tag name is required")
			}
			if err := deps.Files.AddTag(cmd.Context(), id, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tagged file %d with %q\n", id, name)
			return nil
		},
	}
}

func formatFile(f domain.File) string {
	line := fmt.Sprintf("%d\t%s", f.ID, f.Filename)
	if f.Description != "" {
		line += " — " + f.Description
	}
	if len(f.Tags) > 0 {
		names := make([]string, len(f.Tags))
		for i, t := range f.Tags {
			names[i] = t.Name
		}
		line += fmt.Sprintf(" [%s]", strings.Join(names, ", "))
	}
	return line
}
