package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var (
	chatSession string
	chatIndex   string
	chatShare   string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat about your documents",
	Long: `Starts an interactive question loop. Each exchange is persisted to
the chat session; a fresh session id derived from the current time is
used unless --resume names an existing one.

With --share the named shared snapshot is replayed read-only instead.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSession, "resume", "", "session id to resume")
	chatCmd.Flags().StringVar(&chatIndex, "index", "", "document index to query (default: any)")
	chatCmd.Flags().StringVar(&chatShare, "share", "", "share token to replay read-only")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if qaService == nil || sessionManager == nil {
		return errors.New("services not configured")
	}

	ctx := context.Background()

	if chatShare != "" {
		return replayShare(ctx, cmd, chatShare)
	}

	id := chatSession
	if id == "" {
		id = domain.NewSessionID(time.Now())
	}
	session := sessionManager.LoadSession(ctx, id)
	cmd.Printf("Session %s (%d earlier turns). Type a question, or \"exit\".\n",
		session.ID, len(session.Turns))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := qaService.Ask(ctx, question, chatIndex)
		if err != nil {
			// The session history is untouched by a failed ask.
			cmd.PrintErrf("Answer unavailable: %v\n", err)
			continue
		}

		turn := domain.ChatTurn{
			Question: question,
			Answer:   answer.Text,
			Sources:  answer.Sources,
		}
		if err := sessionManager.RecordTurn(ctx, session, turn); err != nil {
			cmd.PrintErrf("Warning: chat history not saved: %v\n", err)
		}

		printTurn(cmd, turn)
	}

	return scanner.Err()
}

// replayShare renders a shared snapshot read-only.
func replayShare(ctx context.Context, cmd *cobra.Command, token string) error {
	snapshot, err := sessionManager.ResolveShare(ctx, token)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return errors.New("invalid or unknown share link")
	}

	cmd.Printf("Viewing shared session %s (read-only, %d turns)\n\n",
		snapshot.ChatID, len(snapshot.Turns))
	// Turns are stored newest-first; replay chronologically.
	for i := len(snapshot.Turns) - 1; i >= 0; i-- {
		printTurn(cmd, snapshot.Turns[i])
	}
	return nil
}

func printTurn(cmd *cobra.Command, turn domain.ChatTurn) {
	cmd.Printf("Q: %s\n", turn.Question)
	cmd.Printf("A: %s\n", turn.Answer)
	if len(turn.Sources) > 0 {
		cmd.Printf("Sources: %s\n", strings.Join(turn.Sources, ", "))
	}
	cmd.Println()
}
