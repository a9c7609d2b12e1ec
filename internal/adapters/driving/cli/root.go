// Package cli implements the docqa command line interface.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/extract"
	llmollama "github.com/custodia-labs/docqa-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docqa-cli/internal/chunker"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/core/services"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired during PersistentPreRunE and consumed by commands.
var (
	qaService      driving.QAService
	sessionManager driving.SessionManager
	indexService   *services.IndexService
	chatStore      *sqlite.Store
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about your documents",
	Long: `docqa indexes local documents and answers questions about them.
Documents are split into chunks, embedded via Ollama and searched by
similarity; answers are generated from the retrieved context only.
Chat sessions persist locally and can be renamed, exported and shared
via tokenized links.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

// Execute runs the root command.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print pipeline debug output to stderr")
}

// initServices wires adapters and services from configuration.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	chunkSize := cfg.GetInt(file.KeyChunkSize)
	if chunkSize == 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	overlap := cfg.GetInt(file.KeyChunkOverlap)
	if _, ok := cfg.Get(file.KeyChunkOverlap); !ok {
		overlap = chunker.DefaultOverlap
	}

	splitter, err := chunker.New(
		chunker.WithChunkSize(chunkSize),
		chunker.WithOverlap(overlap),
	)
	if err != nil {
		return fmt.Errorf("chunk size %d with overlap %d: %w", chunkSize, overlap, err)
	}

	embedder := ollama.NewEmbeddingService(ollama.Config{
		BaseURL: cfg.GetString(file.KeyOllamaBaseURL),
		Model:   cfg.GetString(file.KeyEmbeddingModel),
	})
	llm := llmollama.NewLLMService(llmollama.LLMConfig{
		BaseURL: cfg.GetString(file.KeyOllamaBaseURL),
		Model:   cfg.GetString(file.KeyLLMModel),
	})

	dataDir := cfg.GetString(file.KeyDataDir)
	indexDir := ""
	if dataDir != "" {
		indexDir = filepath.Join(dataDir, "vectorstores")
	}
	repo, err := disk.NewIndexRepository(indexDir)
	if err != nil {
		return fmt.Errorf("opening index storage: %w", err)
	}

	cache := memory.NewIndexCache(cfg.GetInt(file.KeyCacheCapacity))
	indexService = services.NewIndexService(splitter, embedder, repo, cache)

	qaService = services.NewQAService(
		indexService,
		services.NewRetriever(embedder),
		services.NewSynthesizer(llm),
		extract.New(),
		cfg.GetInt(file.KeyTopK),
	)

	chatStore, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening chat storage: %w", err)
	}
	sessionManager = services.NewSessionService(chatStore.SessionStore(), chatStore.ShareStore())

	return nil
}

// shutdown releases resources held by the wired services.
func shutdown() {
	if chatStore != nil {
		if err := chatStore.Close(); err != nil {
			logger.Warn("Closing chat storage: %v", err)
		}
	}
}
