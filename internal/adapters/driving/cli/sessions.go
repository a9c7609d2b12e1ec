package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted chat sessions",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename [old-id] [new-id]",
	Short: "Rename a chat session",
	Long: `Moves a session's history to a new id. Renaming a session that does
not exist is a no-op; an existing target session is overwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runSessionsRename,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a chat session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear [id]",
	Short: "Clear a session's chat history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsClear,
}

var sessionsExportOutput string

var sessionsExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a session's chat history as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsExport,
}

func init() {
	sessionsExportCmd.Flags().StringVarP(&sessionsExportOutput, "output", "o", "",
		"write to file instead of stdout")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsRenameCmd, sessionsDeleteCmd,
		sessionsClearCmd, sessionsExportCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	ids, err := sessionManager.ListSessions(context.Background())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		cmd.Println("No sessions.")
		return nil
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}

func runSessionsRename(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	if err := sessionManager.RenameSession(context.Background(), args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Renamed %s to %s\n", args[0], args[1])
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	if err := sessionManager.DeleteSession(context.Background(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	if err := sessionManager.ClearSession(context.Background(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Cleared %s\n", args[0])
	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	data, err := sessionManager.ExportSession(context.Background(), args[0])
	if err != nil {
		return err
	}

	if sessionsExportOutput != "" {
		if err := os.WriteFile(sessionsExportOutput, []byte(data), 0600); err != nil {
			return err
		}
		cmd.Printf("Exported %s to %s\n", args[0], sessionsExportOutput)
		return nil
	}

	cmd.Println(data)
	return nil
}
