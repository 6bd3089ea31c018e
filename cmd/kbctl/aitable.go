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

var aiTableCmd = &cobra.Command{
	Use:   "ai-table",
	Short: "Create and query AI tables",
	Long: `AI tables apply a model-backed task (summarization, classification,
or generation) over rows of a source table or knowledge base and expose the
output as query-able rows.`,
}

// --- create subcommand ---

var aiTableCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an AI table from a source table",
	RunE:  runAITableCreate,
}

func runAITableCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("ai_table_name")
	source, _ := cmd.Flags().GetString("source_table")
	taskFlag, _ := cmd.Flags().GetString("task_type")
	outputCol, _ := cmd.Flags().GetString("output_column")
	engineName, _ := cmd.Flags().GetString("engine_name")
	project, _ := cmd.Flags().GetString("project")
	inputCols := splitColumns(cmd, "input_columns")

	if name == "" {
		return fmt.Errorf("--ai_table_name is required")
	}
	if source == "" {
		return fmt.Errorf("--source_table is required")
	}

	// Task-type validation happens before any remote call.
	task, err := types.ParseTaskType(taskFlag)
	if err != nil {
		return err
	}

	cfg := types.AITableConfig{
		Name:         name,
		Project:      project,
		SourceTable:  source,
		Task:         task,
		InputColumns: inputCols,
		OutputColumn: outputCol,
		EngineName:   engineName,
	}

	st, err := statement.CreateAITable(cfg)
	if err != nil {
		return err
	}

	sess, _, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	log.Info("creating ai table",
		zap.String("table", cfg.Name), zap.String("source", cfg.SourceTable),
		zap.String("task", string(cfg.Task)), zap.String("output_column", cfg.OutputColumn))
	if err := sess.Exec(cmd.Context(), st); err != nil {
		if platform.IsAlreadyExists(err) {
			log.Warn("ai table already exists", zap.String("table", cfg.Name))
			return nil
		}
		log.Error("ai table creation failed", zap.String("table", cfg.Name), zap.Error(err))
		return err
	}

	log.Info("ai table created", zap.String("table", cfg.Name))
	fmt.Printf("AI table %s created from %s (%s).\n", cfg.Name, cfg.SourceTable, cfg.Task)
	return nil
}

// --- query subcommand ---

var aiTableQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query an AI table's rows",
	RunE:  runAITableQuery,
}

func runAITableQuery(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("ai_table_name")
	filter, _ := cmd.Flags().GetString("filter")
	limit, _ := cmd.Flags().GetInt("limit")
	project, _ := cmd.Flags().GetString("project")

	if name == "" {
		return fmt.Errorf("--ai_table_name is required")
	}

	st, err := statement.SelectAITable(project, name, filter, limit)
	if err != nil {
		return err
	}

	sess, _, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	log.Info("querying ai table", zap.String("table", name), zap.Int("limit", limit))
	rs, err := sess.Query(cmd.Context(), st)
	if err != nil {
		log.Error("ai table query failed", zap.String("table", name), zap.Error(err))
		return err
	}

	return writeResults(cmd, rs)
}

func init() {
	aiTableCreateCmd.Flags().String("ai_table_name", "", "AI table name")
	aiTableCreateCmd.Flags().String("source_table", "", "source table or knowledge base")
	aiTableCreateCmd.Flags().String("task_type", "", "task: summarization, classification, or generation")
	aiTableCreateCmd.Flags().String("input_columns", "", "comma-separated input columns")
	aiTableCreateCmd.Flags().String("output_column", "", "output column name")
	aiTableCreateCmd.Flags().String("engine_name", "google_gemini_engine", "engine backing the model")

	aiTableQueryCmd.Flags().String("ai_table_name", "", "AI table name")
	aiTableQueryCmd.Flags().String("filter", "", "optional WHERE condition")
	aiTableQueryCmd.Flags().Int("limit", 10, "maximum rows to return")
	aiTableQueryCmd.Flags().Bool("json", false, "output results as JSON")
	aiTableQueryCmd.Flags().String("format", "", "output format: table, json, or yaml")

	aiTableCmd.AddCommand(aiTableCreateCmd)
	aiTableCmd.AddCommand(aiTableQueryCmd)

	rootCmd.AddCommand(aiTableCmd)
}
