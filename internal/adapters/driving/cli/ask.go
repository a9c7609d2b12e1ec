package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var (
	askIndex   string
	askSession string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Retrieves the most relevant chunks from the document index and
generates an answer grounded on them. With --session the exchange is
appended to that chat session's history.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askIndex, "index", "", "document index to query (default: any)")
	askCmd.Flags().StringVar(&askSession, "session", "", "session id to record the exchange under")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if qaService == nil {
		return errors.New("qa service not configured")
	}

	ctx := context.Background()
	question := args[0]

	answer, err := qaService.Ask(ctx, question, askIndex)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationFailed) || errors.Is(err, domain.ErrEmbeddingFailed) {
			cmd.PrintErrln("Answer unavailable: the model backend did not respond.")
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	// History is only appended after a successful (or degraded
	// "no index") answer, so a failure never corrupts the session.
	if askSession != "" {
		session := sessionManager.LoadSession(ctx, askSession)
		turn := domain.ChatTurn{
			Question: question,
			Answer:   answer.Text,
			Sources:  answer.Sources,
		}
		if err := sessionManager.RecordTurn(ctx, session, turn); err != nil {
			cmd.PrintErrf("Warning: chat history not saved: %v\n", err)
		}
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  - %s\n", src)
		}
	}
	return nil
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(map[string]any{
		"answer":  answer.Text,
		"sources": answer.Sources,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
