// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meshintel/kbctl/internal/ingest"
	"github.com/meshintel/kbctl/internal/platform"
	"github.com/meshintel/kbctl/internal/statement"
	"github.com/meshintel/kbctl/pkg/types"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage knowledge bases (create, ingest, index, search)",
}

// --- create subcommand ---

var kbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a knowledge base (idempotent)",
	Long: `Create provisions a knowledge base bound to the embedding engine.
When --input_file is given, the column plan is derived from the CSV header:
the identifier is the column literally named "id" (else the first column)
and content defaults to every non-identifier, non-metadata column. Explicit
--id_column/--content_columns flags override the derivation.

Creating a knowledge base that already exists logs a warning and exits 0.`,
	RunE: runKBCreate,
}

func runKBCreate(cmd *cobra.Command, args []string) error {
	cfg, err := kbConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := statement.CreateKnowledgeBase(cfg)
	if err != nil {
		return err
	}

	sess, _, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	log.Info("creating knowledge base",
		zap.String("kb", cfg.Name), zap.String("engine", cfg.EngineName),
		zap.String("id_column", cfg.IDColumn),
		zap.Strings("content_columns", cfg.ContentColumns),
		zap.Strings("metadata_columns", cfg.MetadataColumns))
	if err := sess.Exec(cmd.Context(), st); err != nil {
		if platform.IsAlreadyExists(err) {
			log.Warn("knowledge base already exists", zap.String("kb", cfg.Name))
			return nil
		}
		log.Error("knowledge base creation failed", zap.String("kb", cfg.Name), zap.Error(err))
		return err
	}

	log.Info("knowledge base created", zap.String("kb", cfg.Name))
	fmt.Printf("Knowledge base %s created.\n", cfg.Name)
	return nil
}

// kbConfigFromFlags assembles the knowledge-base settings, deriving the
// column plan from the CSV header when an input file is named and the
// flags leave the plan unspecified.
func kbConfigFromFlags(cmd *cobra.Command) (types.KnowledgeBaseConfig, error) {
	kbName, _ := cmd.Flags().GetString("kb_name")
	project, _ := cmd.Flags().GetString("project")
	engineName, _ := cmd.Flags().GetString("engine_name")
	provider, _ := cmd.Flags().GetString("provider")
	embedding, _ := cmd.Flags().GetString("embedding_model")
	reranking, _ := cmd.Flags().GetString("reranking_model")
	idColumn, _ := cmd.Flags().GetString("id_column")
	contentCols := splitColumns(cmd, "content_columns")
	metadataCols := splitColumns(cmd, "metadata_columns")
	inputFile, _ := cmd.Flags().GetString("input_file")

	cfg := types.KnowledgeBaseConfig{
		Name:            kbName,
		Project:         project,
		EngineName:      engineName,
		Provider:        provider,
		EmbeddingModel:  embedding,
		RerankingModel:  reranking,
		IDColumn:        idColumn,
		ContentColumns:  contentCols,
		MetadataColumns: metadataCols,
	}
	if cfg.Name == "" {
		return cfg, fmt.Errorf("--kb_name is required")
	}

	if inputFile != "" && (cfg.IDColumn == "" || len(cfg.ContentColumns) == 0) {
		ds, err := ingest.LoadCSV(inputFile)
		if err != nil {
			return cfg, err
		}
		plan, err := ingest.PlanColumns(ds.Header, metadataCols)
		if err != nil {
			return cfg, err
		}
		if cfg.IDColumn == "" {
			cfg.IDColumn = plan.ID
		}
		if len(cfg.ContentColumns) == 0 {
			cfg.ContentColumns = plan.Content
		}
		cfg.MetadataColumns = plan.Metadata
	}

	if cfg.IDColumn == "" {
		cfg.IDColumn = "id"
	}
	if len(cfg.ContentColumns) == 0 {
		cfg.ContentColumns = []string{"content"}
	}
	return cfg, nil
}

// --- ingest subcommand ---

var kbIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest CSV rows into a knowledge base",
	Long: `Ingest reads a header-first CSV file and inserts each data row into
the knowledge base. Rejected rows do not abort the batch: failures are
accumulated and summarized at the end, and the command still exits 0 when
any rows landed. With --async the whole batch is submitted as one
server-side job; add --wait to poll it to a terminal state.`,
	RunE: runKBIngest,
}

func runKBIngest(cmd *cobra.Command, args []string) error {
	kbName, _ := cmd.Flags().GetString("kb_name")
	inputFile, _ := cmd.Flags().GetString("input_file")
	async, _ := cmd.Flags().GetBool("async")
	wait, _ := cmd.Flags().GetBool("wait")

	if kbName == "" {
		return fmt.Errorf("--kb_name is required")
	}
	if inputFile == "" {
		return fmt.Errorf("--input_file is required")
	}

	ds, err := ingest.LoadCSV(inputFile)
	if err != nil {
		return err
	}
	log.Info("loaded input file", zap.String("file", inputFile), zap.Int("rows", len(ds.Rows)))

	sess, cfg, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	runner := &ingest.Runner{Exec: sess, Project: cfg.Project, KBName: kbName, Log: log}

	if async {
		summary, err := runner.RunAsync(cmd.Context(), ds)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted ingestion job %s covering %d row(s).\n", summary.JobHandle, summary.Total-summary.Failed)
		printRowErrors(summary)
		if wait {
			return waitForJob(cmd.Context(), sess, summary.JobHandle, pollConfig(cmd))
		}
		return nil
	}

	summary, err := runner.Run(cmd.Context(), ds)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d of %d row(s) into %s", summary.Inserted, summary.Total, kbName)
	if summary.Failed > 0 {
		fmt.Printf(" (%d rejected)", summary.Failed)
	}
	fmt.Println(".")
	printRowErrors(summary)
	return nil
}

func printRowErrors(summary types.IngestSummary) {
	for _, re := range summary.RowErrors {
		fmt.Printf("  line %d: %s\n", re.Line, re.Err)
	}
	if summary.Failed > len(summary.RowErrors) {
		fmt.Printf("  ... and %d more rejected row(s); see the log for details\n",
			summary.Failed-len(summary.RowErrors))
	}
}

// --- index subcommand ---

var kbIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge-base index",
	Long: `Index issues the index-build statement. With --async the build runs
as a server-side job; --wait polls the job with a bounded interval and
timeout, reporting succeeded, failed, or timed out distinctly.`,
	RunE: runKBIndex,
}

func runKBIndex(cmd *cobra.Command, args []string) error {
	kbName, _ := cmd.Flags().GetString("kb_name")
	async, _ := cmd.Flags().GetBool("async")
	wait, _ := cmd.Flags().GetBool("wait")

	if kbName == "" {
		return fmt.Errorf("--kb_name is required")
	}

	sess, cfg, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	indexSt, err := statement.CreateIndex(cfg.Project, kbName)
	if err != nil {
		return err
	}

	if !async {
		log.Info("building index", zap.String("kb", kbName))
		if err := sess.Exec(cmd.Context(), indexSt); err != nil {
			if platform.IsAlreadyExists(err) {
				log.Warn("index already exists", zap.String("kb", kbName))
				return nil
			}
			log.Error("index build failed", zap.String("kb", kbName), zap.Error(err))
			return err
		}
		fmt.Printf("Index built on %s.\n", kbName)
		return nil
	}

	handle := ingest.NewJobHandle("index")
	job, err := statement.CreateJob(handle, []statement.Statement{indexSt})
	if err != nil {
		return err
	}

	log.Info("submitting index job", zap.String("kb", kbName), zap.String("job", handle))
	if err := sess.Exec(cmd.Context(), job); err != nil {
		log.Error("index job submission failed", zap.String("kb", kbName), zap.Error(err))
		return err
	}
	fmt.Printf("Submitted index job %s.\n", handle)

	if wait {
		return waitForJob(cmd.Context(), sess, handle, pollConfig(cmd))
	}
	return nil
}

// --- search subcommand ---

var kbSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a semantic search against a knowledge base",
	Long: `Search sends a ranked semantic query. The relevance threshold and
limit are enforced server-side; rows come back ordered by descending
relevance and are printed as returned, without client-side re-filtering.`,
	RunE: runKBSearch,
}

func runKBSearch(cmd *cobra.Command, args []string) error {
	kbName, _ := cmd.Flags().GetString("kb_name")
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	threshold, _ := cmd.Flags().GetFloat64("relevance_threshold")
	latestBy, _ := cmd.Flags().GetString("latest_by")

	if kbName == "" {
		return fmt.Errorf("--kb_name is required")
	}
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}

	opts := types.SearchOptions{
		Query:              query,
		Limit:              limit,
		RelevanceThreshold: threshold,
		LatestBy:           latestBy,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	project, _ := cmd.Flags().GetString("project")
	st, err := statement.Search(project, kbName, opts)
	if err != nil {
		return err
	}

	sess, _, err := connect(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	log.Info("searching knowledge base",
		zap.String("kb", kbName), zap.String("query", query),
		zap.Int("limit", limit), zap.Float64("relevance_threshold", threshold))
	rs, err := sess.Query(cmd.Context(), st)
	if err != nil {
		log.Error("search failed", zap.String("kb", kbName), zap.Error(err))
		return err
	}

	return writeResults(cmd, rs)
}

func splitColumns(cmd *cobra.Command, flag string) []string {
	raw, _ := cmd.Flags().GetString(flag)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

func init() {
	kbCmd.PersistentFlags().String("kb_name", "", "knowledge base name")

	kbCreateCmd.Flags().String("input_file", "", "CSV file used to derive the column plan")
	kbCreateCmd.Flags().String("id_column", "", "identifier column (default: derived from the CSV header)")
	kbCreateCmd.Flags().String("content_columns", "", "comma-separated content columns (default: derived)")
	kbCreateCmd.Flags().String("metadata_columns", "", "comma-separated metadata columns")
	kbCreateCmd.Flags().String("engine_name", "google_gemini_engine", "engine backing the knowledge base")
	kbCreateCmd.Flags().String("provider", "google_gemini", "model provider")
	kbCreateCmd.Flags().String("embedding_model", "gemini-2-5-flash", "embedding model name")
	kbCreateCmd.Flags().String("reranking_model", "gemini-2-5-flash", "reranking model name")

	kbIngestCmd.Flags().String("input_file", "", "CSV file to ingest (header first)")
	kbIngestCmd.Flags().Bool("async", false, "submit the batch as one server-side job")
	kbIngestCmd.Flags().Bool("wait", false, "poll the async job to a terminal state")
	kbIngestCmd.Flags().Duration("poll_interval", 0, "job polling interval (default 2s)")
	kbIngestCmd.Flags().Duration("poll_timeout", 0, "job polling time budget (default 2m)")

	kbIndexCmd.Flags().Bool("async", false, "run the build as a server-side job")
	kbIndexCmd.Flags().Bool("wait", false, "poll the async job to a terminal state")
	kbIndexCmd.Flags().Duration("poll_interval", 0, "job polling interval (default 2s)")
	kbIndexCmd.Flags().Duration("poll_timeout", 0, "job polling time budget (default 2m)")

	kbSearchCmd.Flags().String("query", "", "free-text search query")
	kbSearchCmd.Flags().Int("limit", 10, "maximum results to return")
	kbSearchCmd.Flags().Float64("relevance_threshold", 0.5, "server-side relevance threshold in [0,1]")
	kbSearchCmd.Flags().String("latest_by", "", "timestamp column projected through a latest-value window")
	kbSearchCmd.Flags().Bool("json", false, "output results as JSON")
	kbSearchCmd.Flags().String("format", "", "output format: table, json, or yaml")

	kbCmd.AddCommand(kbCreateCmd)
	kbCmd.AddCommand(kbIngestCmd)
	kbCmd.AddCommand(kbIndexCmd)
	kbCmd.AddCommand(kbSearchCmd)

	rootCmd.AddCommand(kbCmd)
}
