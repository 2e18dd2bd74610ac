package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wiztriage/wiztriage/internal/core/domain"
	"github.com/wiztriage/wiztriage/internal/core/services/enrich"
)

// Analyzer runs the full classification pipeline for one table and profile:
// schema validation, normalization, age enrichment, partitioning,
// aggregation, and matrix composition. It is stateless between runs.
type Analyzer struct {
	normalizer *Normalizer
	ageCalc    *enrich.AgeCalculator
	tracer     trace.Tracer
}

// NewAnalyzer creates an analyzer with the default normalizer and clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		normalizer: NewNormalizer(),
		ageCalc:    enrich.NewAgeCalculator(),
		tracer:     otel.Tracer("wiztriage/analyze"),
	}
}

// Run executes the pipeline. source and period are run metadata supplied by
// the caller (input filename and the reporting period derived from it).
func (a *Analyzer) Run(ctx context.Context, table *domain.Table, profile *domain.Profile, source, period string) (*domain.Analysis, error) {
	ctx, span := a.tracer.Start(ctx, "analyze.run",
		trace.WithAttributes(
			attribute.String("profile", profile.Name),
			attribute.Int("records", table.Len()),
		))
	defer span.End()

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %q: %w", profile.Name, err)
	}

	schema, err := a.validate(ctx, table)
	if err != nil {
		return nil, err
	}

	records := a.normalize(ctx, table, schema)

	classifier := NewClassifier(profile)
	groups := a.partition(ctx, classifier, records)

	diags := classifier.Diagnose(records)
	for _, d := range diags {
		slog.Warn("profile rules overlap",
			"profile", profile.Name,
			"rule", d.FirstRule, "group", d.Group,
			"other_rule", d.SecondRule, "other_group", d.OtherGroup,
			"records", d.Records)
	}

	summaries, total := a.aggregate(ctx, profile, records, groups)
	matrix := NewComposer(profile).Compose(summaries, total)

	return &domain.Analysis{
		ID:          uuid.New().String(),
		Profile:     profile.Name,
		Source:      source,
		Period:      period,
		GeneratedAt: time.Now(),
		Table:       table,
		Schema:      schema,
		Groups:      groups,
		Summaries:   summaries,
		Total:       total,
		Matrix:      matrix,
		Diagnostics: diags,
	}, nil
}

// validate resolves the schema and rejects empty input before any record is
// processed.
func (a *Analyzer) validate(ctx context.Context, table *domain.Table) (domain.Schema, error) {
	_, span := a.tracer.Start(ctx, "analyze.validate")
	defer span.End()

	schema, err := domain.ResolveSchema(table.Columns)
	if err != nil {
		return domain.Schema{}, err
	}
	if table.Len() == 0 {
		return domain.Schema{}, domain.ErrEmptyInput
	}
	return schema, nil
}

func (a *Analyzer) normalize(ctx context.Context, table *domain.Table, schema domain.Schema) []domain.NormalizedRecord {
	_, span := a.tracer.Start(ctx, "analyze.normalize")
	defer span.End()

	records := a.normalizer.NormalizeTable(table, schema)
	a.ageCalc.Apply(records, table, schema)
	return records
}

func (a *Analyzer) partition(ctx context.Context, classifier *Classifier, records []domain.NormalizedRecord) map[string][]int {
	_, span := a.tracer.Start(ctx, "analyze.partition")
	defer span.End()

	return classifier.Partition(records)
}

func (a *Analyzer) aggregate(ctx context.Context, profile *domain.Profile, records []domain.NormalizedRecord, groups map[string][]int) ([]domain.GroupSummary, domain.GroupSummary) {
	_, span := a.tracer.Start(ctx, "analyze.aggregate")
	defer span.End()

	return NewAggregator(profile.UnknownSeverity).Summarize(records, groups, profile.Groups)
}
