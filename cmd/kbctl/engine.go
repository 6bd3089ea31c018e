// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meshintel/kbctl/internal/platform"
	"github.com/meshintel/kbctl/internal/statement"
	"github.com/meshintel/kbctl/pkg/types"
)

var engineCmd = &cobra.Command{
	Use:   "engine",
	Short: "Manage the embedding/reranking engine on the platform",
}

var engineCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the embedding engine (idempotent)",
	Long: `Create registers the embedding/reranking engine on the platform,
binding the provider credential. Creating an engine that already exists is
not an error: the conflict is logged as a warning and the command exits 0.`,
	RunE: runEngineCreate,
}

// engineConfigFromFlags resolves the engine settings; the provider key is a
// configuration error when absent, detected before any remote call.
func engineConfigFromFlags(cmd *cobra.Command) (types.EngineConfig, error) {
	name, _ := cmd.Flags().GetString("engine_name")
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model_name")
	geminiKey, _ := cmd.Flags().GetString("gemini_api_key")

	cfg := types.EngineConfig{
		Name:      name,
		Provider:  provider,
		ModelName: model,
		APIKey:    secretStore.Resolve(geminiKey, "gemini-api-key", "KBCTL_GEMINI_API_KEY", "GEMINI_API_KEY"),
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("embedding-provider API key required: pass --gemini_api_key or set GEMINI_API_KEY")
	}
	return cfg, nil
}

func runEngineCreate(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := statement.CreateEngine(cfg)
	if err != nil {
		return err
	}

	sess, _, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	log.Info("creating engine", zap.String("engine", cfg.Name), zap.String("provider", cfg.Provider))
	if err := sess.Exec(cmd.Context(), st); err != nil {
		if platform.IsAlreadyExists(err) {
			log.Warn("engine already exists", zap.String("engine", cfg.Name))
			return nil
		}
		log.Error("engine creation failed", zap.String("engine", cfg.Name), zap.Error(err))
		return err
	}

	log.Info("engine created", zap.String("engine", cfg.Name))
	fmt.Printf("Engine %s created.\n", cfg.Name)
	return nil
}

func init() {
	engineCreateCmd.Flags().String("engine_name", "google_gemini_engine", "engine identifier")
	engineCreateCmd.Flags().String("provider", "google_gemini", "platform handler for the provider")
	engineCreateCmd.Flags().String("model_name", "gemini-2-5-flash", "provider model name")
	engineCreateCmd.Flags().String("gemini_api_key", "", "embedding-provider API key (or GEMINI_API_KEY)")

	engineCmd.AddCommand(engineCreateCmd)
	rootCmd.AddCommand(engineCmd)
}
