// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kbctl CLI, a client for a remote
// knowledge-base platform. Every operation translates CLI intent into
// textual statements executed over one authenticated session: engine and
// knowledge-base creation, CSV ingestion, index builds, semantic search,
// and AI-table operations.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meshintel/kbctl/internal/logging"
	"github.com/meshintel/kbctl/internal/platform"
	"github.com/meshintel/kbctl/internal/secrets"
	"github.com/meshintel/kbctl/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	log         *zap.Logger
	secretStore *secrets.Store
)

// rootCmd is the base command for the kbctl CLI.
var rootCmd = &cobra.Command{
	Use:   "kbctl",
	Short: "Drive a remote knowledge-base platform from the command line",
	Long: `kbctl manages knowledge bases on a remote platform: it creates the
embedding engine and knowledge base, ingests CSV rows, builds the index,
runs semantic search, and creates and queries AI tables. All embedding,
reranking, indexing, and inference happens on the platform; kbctl builds
the statements, sends them, and reports each step's outcome.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log_level")
		logFile, _ := cmd.Flags().GetString("log_file")

		l, err := logging.New(types.LoggingConfig{Level: logLevel, FilePath: logFile})
		if err != nil {
			return err
		}
		log = l

		secretsDir, _ := cmd.Flags().GetString("secrets_dir")
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		secretStore = s
		if keys := s.Keys(); len(keys) > 0 {
			log.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kbctl.yaml or ~/.config/kbctl/config.yaml)")
	rootCmd.PersistentFlags().String("api_key", "", "platform API key (or KBCTL_API_KEY / MINDSDB_API_KEY)")
	rootCmd.PersistentFlags().String("project", "", "platform project namespace (optional)")
	rootCmd.PersistentFlags().String("host", "127.0.0.1", "platform host")
	rootCmd.PersistentFlags().Int("port", 47335, "platform MySQL-wire port")
	rootCmd.PersistentFlags().String("user", "mindsdb", "platform login user")
	rootCmd.PersistentFlags().String("log_level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log_file", "", "optional JSON log file (rotated)")
	rootCmd.PersistentFlags().String("secrets_dir", ".secrets/", "directory of credential files")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kbctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kbctl"))
		}
	}

	viper.SetEnvPrefix("KBCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// platformConfig assembles connection settings from flags, config file, and
// environment. The API key resolves flag > env > secrets file.
func platformConfig(cmd *cobra.Command) (types.PlatformConfig, error) {
	apiKey, _ := cmd.Flags().GetString("api_key")
	project, _ := cmd.Flags().GetString("project")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	user, _ := cmd.Flags().GetString("user")

	cfg := types.PlatformConfig{
		Host:    host,
		Port:    port,
		User:    user,
		Project: project,
		APIKey:  secretStore.Resolve(apiKey, "mindsdb-api-key", "KBCTL_API_KEY", "MINDSDB_API_KEY"),
	}
	cfg.Defaults()

	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("platform API key required: pass --api_key or set KBCTL_API_KEY")
	}
	return cfg, nil
}

// connect opens the session used by one command invocation.
func connect(cmd *cobra.Command) (*platform.Session, types.PlatformConfig, error) {
	cfg, err := platformConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	sess, err := platform.Connect(cmd.Context(), cfg, log)
	if err != nil {
		return nil, cfg, err
	}
	return sess, cfg, nil
}

// pollConfig reads the shared polling flags.
func pollConfig(cmd *cobra.Command) types.PollConfig {
	interval, _ := cmd.Flags().GetDuration("poll_interval")
	timeout, _ := cmd.Flags().GetDuration("poll_timeout")
	cfg := types.PollConfig{Interval: interval, Timeout: timeout}
	cfg.Defaults()
	return cfg
}

// waitForJob polls a submitted job to a terminal state and maps that state
// to the command outcome. Failed and timed-out both exit non-zero, with
// distinct messages.
func waitForJob(ctx context.Context, sess *platform.Session, handle string, cfg types.PollConfig) error {
	res, err := platform.PollJob(ctx, sess, handle, cfg, log)
	if err != nil {
		return err
	}

	switch res.State {
	case types.JobSucceeded:
		platform.DropJob(ctx, sess, handle)
		return nil
	case types.JobFailed:
		platform.DropJob(ctx, sess, handle)
		return fmt.Errorf("job %s failed: %s", handle, res.Error)
	default:
		return fmt.Errorf("job %s did not finish within %s: gave up waiting (the job may still complete server-side)",
			handle, cfg.Timeout.Round(time.Second))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
