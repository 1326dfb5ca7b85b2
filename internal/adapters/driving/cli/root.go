// Package cli provides the command-line interface for the copilot.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/ai"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/config/file"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/corpus/filesystem"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/datastore/sqlite"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/index/tfidf"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driving"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/services"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	cfgFile string
	dbPath  string
	docsDir string
	verbose bool
)

// Services wired by ensureServices. Tests swap these for mocks.
var (
	copilotService driving.CopilotService
	dataStore      driven.DataStore
	retrieverSvc   driven.Retriever
	completionSvc  driven.CompletionService
	appConfig      = file.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "copilot",
	Short: "Answer retail analytics questions over documents and SQL",
	Long: `Retail Analytics Copilot answers natural-language questions about a
retail business by combining document retrieval with SQL over the
transactional database. Questions are routed to documents, SQL, or
both, and answers carry citations and a confidence score.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetOutput(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.retail-copilot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs", "", "documents directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and releases wired services afterwards.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// ensureServices builds the service graph from configuration on first
// use. Commands that answer questions call it at the top of their RunE.
func ensureServices(ctx context.Context) error {
	if copilotService != nil {
		return nil
	}

	path := cfgFile
	if path == "" {
		defaultPath, err := file.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := file.LoadConfig(path)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if docsDir != "" {
		cfg.Documents.Dir = docsDir
	}
	appConfig = cfg

	store, err := sqlite.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	docs, err := filesystem.NewLoader(cfg.Documents.Dir).Load(ctx)
	if err != nil {
		store.Close()
		return fmt.Errorf("load documents: %w", err)
	}
	index := tfidf.New(docs)
	logger.Debug("Indexed %d chunks from %d documents", index.Len(), len(docs))

	completion, err := ai.CreateAndValidateCompletionService(cfg.CompletionSettings())
	if err != nil {
		store.Close()
		return err
	}

	if aware, ok := completion.(driven.PromptStoreAware); ok {
		promptStore, err := file.NewPromptStore("")
		if err == nil {
			aware.SetPromptStore(promptStore)
		}
	}

	dataStore = store
	retrieverSvc = index
	completionSvc = completion
	copilotService = services.NewPipeline(completion, store, index)
	return nil
}

// ensureDataStore opens just the database, for commands that don't
// need the model or the document index.
func ensureDataStore() error {
	if dataStore != nil {
		return nil
	}

	path := cfgFile
	if path == "" {
		defaultPath, err := file.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := file.LoadConfig(path)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	appConfig = cfg

	store, err := sqlite.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	dataStore = store
	return nil
}

// closeServices releases anything ensureServices opened.
func closeServices() {
	if completionSvc != nil {
		completionSvc.Close()
		completionSvc = nil
	}
	if dataStore != nil {
		dataStore.Close()
		dataStore = nil
	}
	copilotService = nil
	retrieverSvc = nil
}
