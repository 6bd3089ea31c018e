// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meshintel/kbctl/pkg/types"
)

// CreateEngine builds the idempotent engine-creation statement. The
// provider credential appears only in the wire form; the loggable form
// masks it.
func CreateEngine(cfg types.EngineConfig) (Statement, error) {
	if err := ValidateIdentifier(cfg.Name); err != nil {
		return Statement{}, fmt.Errorf("engine name: %w", err)
	}
	if err := ValidateIdentifier(cfg.Provider); err != nil {
		return Statement{}, fmt.Errorf("engine provider: %w", err)
	}
	if cfg.APIKey == "" {
		return Statement{}, fmt.Errorf("engine %s: provider api key is required", cfg.Name)
	}

	format := "CREATE ML_ENGINE %s FROM %s USING api_key = %s;"
	return Statement{
		text:     fmt.Sprintf(format, cfg.Name, cfg.Provider, quote(cfg.APIKey)),
		redacted: fmt.Sprintf(format, cfg.Name, cfg.Provider, redactedMask),
	}, nil
}

// modelBlock renders an embedding_model/reranking_model JSON-style block.
func modelBlock(provider, engine, model string) string {
	return fmt.Sprintf(`{"provider": %s, "engine": %s, "model_name": %s}`,
		quote(provider), quote(engine), quote(model))
}

// CreateKnowledgeBase builds the knowledge-base creation statement with the
// resolved column plan.
func CreateKnowledgeBase(cfg types.KnowledgeBaseConfig) (Statement, error) {
	name, err := QualifiedName(cfg.Project, cfg.Name)
	if err != nil {
		return Statement{}, fmt.Errorf("knowledge base name: %w", err)
	}
	if err := ValidateIdentifier(cfg.EngineName); err != nil {
		return Statement{}, fmt.Errorf("engine name: %w", err)
	}
	if err := ValidateIdentifier(cfg.IDColumn); err != nil {
		return Statement{}, fmt.Errorf("id column: %w", err)
	}
	if len(cfg.ContentColumns) == 0 {
		return Statement{}, fmt.Errorf("knowledge base %s: at least one content column is required", name)
	}
	if err := ValidateIdentifiers(cfg.ContentColumns); err != nil {
		return Statement{}, fmt.Errorf("content column: %w", err)
	}
	if err := ValidateIdentifiers(cfg.MetadataColumns); err != nil {
		return Statement{}, fmt.Errorf("metadata column: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE KNOWLEDGE_BASE %s\nUSING\n", name)
	fmt.Fprintf(&b, "embedding_model = %s,\n", modelBlock(cfg.Provider, cfg.EngineName, cfg.EmbeddingModel))
	fmt.Fprintf(&b, "reranking_model = %s,\n", modelBlock(cfg.Provider, cfg.EngineName, cfg.RerankingModel))
	fmt.Fprintf(&b, "metadata_columns = %s,\n", quoteList(cfg.MetadataColumns))
	fmt.Fprintf(&b, "content_columns = %s,\n", quoteList(cfg.ContentColumns))
	fmt.Fprintf(&b, "id_column = %s;", quote(cfg.IDColumn))

	return newStatement(b.String()), nil
}

// InsertRow builds a single-row insert. Values pass through verbatim apart
// from quote escaping; the platform does any type coercion it needs.
func InsertRow(project, kb string, columns, values []string) (Statement, error) {
	name, err := QualifiedName(project, kb)
	if err != nil {
		return Statement{}, fmt.Errorf("knowledge base name: %w", err)
	}
	if len(columns) == 0 {
		return Statement{}, fmt.Errorf("insert into %s: no columns", name)
	}
	if len(values) != len(columns) {
		return Statement{}, fmt.Errorf("insert into %s: %d values for %d columns", name, len(values), len(columns))
	}
	if err := ValidateIdentifiers(columns); err != nil {
		return Statement{}, fmt.Errorf("insert column: %w", err)
	}

	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return newStatement(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		name, strings.Join(columns, ", "), strings.Join(quoted, ", "))), nil
}

// CreateIndex builds the index-build statement for a knowledge base.
func CreateIndex(project, kb string) (Statement, error) {
	name, err := QualifiedName(project, kb)
	if err != nil {
		return Statement{}, fmt.Errorf("knowledge base name: %w", err)
	}
	return newStatement(fmt.Sprintf("CREATE INDEX ON KNOWLEDGE_BASE %s;", name)), nil
}

// CreateJob wraps statements in a one-shot server-side job named handle.
// The inner statements run on the platform; the client keeps only the
// handle for status polling.
func CreateJob(handle string, inner []Statement) (Statement, error) {
	if err := ValidateIdentifier(handle); err != nil {
		return Statement{}, fmt.Errorf("job handle: %w", err)
	}
	if len(inner) == 0 {
		return Statement{}, fmt.Errorf("job %s: no statements", handle)
	}

	texts := make([]string, len(inner))
	redacted := make([]string, len(inner))
	var masked bool
	for i, s := range inner {
		texts[i] = strings.TrimSuffix(s.Text(), ";")
		redacted[i] = strings.TrimSuffix(s.String(), ";")
		if s.redacted != "" {
			masked = true
		}
	}

	format := "CREATE JOB %s (\n%s\n);"
	body := fmt.Sprintf(format, handle, strings.Join(texts, ";\n"))
	st := Statement{text: body}
	if masked {
		st.redacted = fmt.Sprintf(format, handle, strings.Join(redacted, ";\n"))
	}
	return st, nil
}

// SelectJobStatus builds the status query for a job handle. Only the name,
// status, and error columns are consumed by the poller.
func SelectJobStatus(handle string) (Statement, error) {
	if err := ValidateIdentifier(handle); err != nil {
		return Statement{}, fmt.Errorf("job handle: %w", err)
	}
	return newStatement(fmt.Sprintf("SELECT name, status, error FROM jobs WHERE name = %s;", quote(handle))), nil
}

// DropJob builds the cleanup statement for a finished one-shot job.
func DropJob(handle string) (Statement, error) {
	if err := ValidateIdentifier(handle); err != nil {
		return Statement{}, fmt.Errorf("job handle: %w", err)
	}
	return newStatement(fmt.Sprintf("DROP JOB %s;", handle)), nil
}

// Search builds the ranked semantic-search statement. Threshold filtering
// and ordering happen server-side; the client does not re-filter.
func Search(project, kb string, opts types.SearchOptions) (Statement, error) {
	name, err := QualifiedName(project, kb)
	if err != nil {
		return Statement{}, fmt.Errorf("knowledge base name: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Statement{}, err
	}

	projection := "*"
	if opts.LatestBy != "" {
		if err := ValidateIdentifier(opts.LatestBy); err != nil {
			return Statement{}, fmt.Errorf("latest_by column: %w", err)
		}
		projection = fmt.Sprintf("*, LAST_VALUE(%s) OVER (ORDER BY %s) AS latest_%s",
			opts.LatestBy, opts.LatestBy, opts.LatestBy)
	}

	threshold := strconv.FormatFloat(opts.RelevanceThreshold, 'g', -1, 64)
	return newStatement(fmt.Sprintf(
		"SELECT %s\nFROM %s\nWHERE content LIKE %s\nAND relevance >= %s\nLIMIT %d;",
		projection, name, quote(opts.Query), threshold, opts.Limit)), nil
}

// taskPrompts maps each task type to its prompt template. The input columns
// are substituted into the template by the platform at inference time.
var taskPrompts = map[types.TaskType]string{
	types.TaskSummarization:  "Summarize the following text concisely: {{%s}}",
	types.TaskClassification: "Classify the following text and answer with a single category label: {{%s}}",
	types.TaskGeneration:     "Generate a response for the following input: {{%s}}",
}

// CreateAITable builds the model-backed table creation statement for one of
// the three recognized task types.
func CreateAITable(cfg types.AITableConfig) (Statement, error) {
	name, err := QualifiedName(cfg.Project, cfg.Name)
	if err != nil {
		return Statement{}, fmt.Errorf("ai table name: %w", err)
	}
	source, err := QualifiedName(cfg.Project, cfg.SourceTable)
	if err != nil {
		return Statement{}, fmt.Errorf("source table: %w", err)
	}
	if err := ValidateIdentifier(cfg.EngineName); err != nil {
		return Statement{}, fmt.Errorf("engine name: %w", err)
	}
	if err := ValidateIdentifier(cfg.OutputColumn); err != nil {
		return Statement{}, fmt.Errorf("output column: %w", err)
	}
	if len(cfg.InputColumns) == 0 {
		return Statement{}, fmt.Errorf("ai table %s: at least one input column is required", name)
	}
	if err := ValidateIdentifiers(cfg.InputColumns); err != nil {
		return Statement{}, fmt.Errorf("input column: %w", err)
	}

	template, ok := taskPrompts[cfg.Task]
	if !ok {
		return Statement{}, fmt.Errorf("unrecognized task type %q: use summarization, classification, or generation", cfg.Task)
	}
	prompt := fmt.Sprintf(template, strings.Join(cfg.InputColumns, "}} {{"))

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE MODEL %s\nFROM %s (SELECT %s)\nPREDICT %s\nUSING\n",
		name, source, strings.Join(cfg.InputColumns, ", "), cfg.OutputColumn)
	fmt.Fprintf(&b, "engine = %s,\n", quote(cfg.EngineName))
	fmt.Fprintf(&b, "task = %s,\n", quote(string(cfg.Task)))
	fmt.Fprintf(&b, "prompt_template = %s;", quote(prompt))

	return newStatement(b.String()), nil
}

// SelectAITable builds the query over an AI table. The filter is an opaque
// condition string; it may not contain a statement separator.
func SelectAITable(project, table, filter string, limit int) (Statement, error) {
	name, err := QualifiedName(project, table)
	if err != nil {
		return Statement{}, fmt.Errorf("ai table name: %w", err)
	}
	if limit <= 0 {
		return Statement{}, fmt.Errorf("limit must be a positive integer, got %d", limit)
	}
	if strings.Contains(filter, ";") {
		return Statement{}, fmt.Errorf("filter must not contain ';'")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s", name)
	if filter != "" {
		fmt.Fprintf(&b, " WHERE %s", filter)
	}
	fmt.Fprintf(&b, " LIMIT %d;", limit)
	return newStatement(b.String()), nil
}
