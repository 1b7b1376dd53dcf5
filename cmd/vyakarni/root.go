package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vyakarni1/vyakarni/internal/ai"
	"github.com/vyakarni1/vyakarni/internal/config"
	"github.com/vyakarni1/vyakarni/internal/dictionary"
	"github.com/vyakarni1/vyakarni/internal/logging"
	"github.com/vyakarni1/vyakarni/internal/pipeline"
	"github.com/vyakarni1/vyakarni/pkg/options"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vyakarni",
	Short: "Hindi grammar and spelling correction service",
	Long: `Vyakarni corrects Hindi text through a multi-stage pipeline:
a standardized-spelling dictionary pass, an AI correction pass, and
final dictionary passes, with every change classified and attributed
to the stage that made it.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.vyakarni/config.yaml)",
	)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(correctCmd)

	// .env is optional; ignore absence.
	_ = godotenv.Load()
}

// assemble wires the full correction stack from configuration. store may
// be nil when Redis is not wanted (one-shot CLI use).
func assemble(ctx context.Context, cfg *config.Config, store *dictionary.Store, log *zap.Logger) (*pipeline.Pipeline, error) {
	rules := dictionary.BuiltinRules()
	if cfg.RulesFile != "" {
		fileRules, err := dictionary.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		rules = append(rules, fileRules...)
	}
	if store != nil {
		custom, err := store.All(ctx)
		if err != nil {
			log.Warn("custom rules unavailable, continuing without them", zap.Error(err))
		} else {
			rules = append(rules, custom...)
		}
	}

	engine := dictionary.NewEngine(rules, log)

	corrector := ai.New(ai.Config{
		APIKey:     cfg.AI.APIKey,
		Model:      cfg.AI.Model,
		BaseURL:    cfg.AI.BaseURL,
		Timeout:    cfg.AI.Timeout,
		MaxRetries: cfg.AI.MaxRetries,
	}, log)

	stages, err := pipeline.StagesFromPlan(cfg.Pipeline.Stages, corrector.Func())
	if err != nil {
		return nil, err
	}
	return pipeline.New(engine, stages, log,
		options.WithMaxDictionaryPasses(cfg.Pipeline.MaxDictionaryPasses))
}

func newRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Debug)
}
