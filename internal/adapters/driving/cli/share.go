package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share [session-id]",
	Short: "Mint a share token for a session",
	Long: `Freezes the session's current history into an immutable snapshot
and prints a token that resolves it. Later changes to the session do
not affect the snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

var shareResolveCmd = &cobra.Command{
	Use:   "resolve [token]",
	Short: "Print the conversation behind a share token",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareResolve,
}

func init() {
	shareCmd.AddCommand(shareResolveCmd)
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	token, err := sessionManager.Share(context.Background(), args[0])
	if err != nil {
		return err
	}
	cmd.Println(token)
	return nil
}

func runShareResolve(cmd *cobra.Command, args []string) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}

	snapshot, err := sessionManager.ResolveShare(context.Background(), args[0])
	if err != nil {
		return err
	}
	if snapshot == nil {
		cmd.Println("Unknown share token.")
		return nil
	}

	cmd.Printf("Shared from session %s\n\n", snapshot.ChatID)
	for i := len(snapshot.Turns) - 1; i >= 0; i-- {
		printTurn(cmd, snapshot.Turns[i])
	}
	return nil
}
