package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/wiztriage/wiztriage/internal/core/domain"
	"github.com/wiztriage/wiztriage/internal/core/ports"
)

// SQLiteStore implements ports.Exporter by persisting analysis runs to a
// SQLite workspace database: run metadata, per-group finding rows, and the
// summary matrix cells.
type SQLiteStore struct {
	db *gorm.DB
}

// RunModel is the GORM model for one analysis run.
type RunModel struct {
	ID          string `gorm:"primaryKey"`
	Profile     string
	Source      string
	Period      string
	RecordCount int
	GeneratedAt time.Time
	CreatedAt   time.Time
}

// FindingModel is the GORM model for one classified finding row.
type FindingModel struct {
	ID           uint   `gorm:"primaryKey"`
	RunID        string `gorm:"index"`
	GroupName    string `gorm:"index"`
	Asset        string
	Location     string
	Severity     string
	Subscription string
	ExploitKnown bool
}

// SummaryCellModel is the GORM model for one summary matrix cell.
type SummaryCellModel struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     string `gorm:"index"`
	GroupName string
	Severity  string
	Count     int
	Exploits  *int
}

// NewSQLiteStore opens (or creates) the workspace database and migrates the
// schema. Query tracing goes through the OpenTelemetry gorm plugin so export
// writes show up in the run trace.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening workspace db: %w", err)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("installing tracing plugin: %w", err)
	}

	if err := db.AutoMigrate(&RunModel{}, &FindingModel{}, &SummaryCellModel{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Export persists one analysis run in a single transaction.
func (s *SQLiteStore) Export(ctx context.Context, analysis *domain.Analysis) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run := RunModel{
			ID:          analysis.ID,
			Profile:     analysis.Profile,
			Source:      analysis.Source,
			Period:      analysis.Period,
			RecordCount: analysis.Table.Len(),
			GeneratedAt: analysis.GeneratedAt,
		}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("saving run: %w", err)
		}

		findings := toFindingModels(analysis)
		if len(findings) > 0 {
			if err := tx.CreateInBatches(findings, 500).Error; err != nil {
				return fmt.Errorf("saving findings: %w", err)
			}
		}

		cells := toSummaryCells(analysis)
		if err := tx.CreateInBatches(cells, 500).Error; err != nil {
			return fmt.Errorf("saving summary: %w", err)
		}

		return nil
	})
}

// Runs lists persisted runs, newest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]RunModel, error) {
	var runs []RunModel
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toFindingModels(analysis *domain.Analysis) []FindingModel {
	schema := analysis.Schema
	var out []FindingModel
	for group, indices := range analysis.Groups {
		for _, idx := range indices {
			rec := analysis.Table.Records[idx]
			out = append(out, FindingModel{
				RunID:        analysis.ID,
				GroupName:    group,
				Asset:        rec.Get(schema.Asset),
				Location:     rec.Get(schema.Location),
				Severity:     rec.Get(schema.Severity),
				Subscription: rec.Get(schema.Subscription),
				ExploitKnown: analyzeExploit(rec.Get(schema.Exploit)),
			})
		}
	}
	return out
}

// analyzeExploit mirrors the normalizer's yes/true parsing without pulling
// the service package into the adapter.
func analyzeExploit(raw string) bool {
	switch raw {
	case "Yes", "yes", "YES", "True", "true", "TRUE":
		return true
	default:
		return false
	}
}

func toSummaryCells(analysis *domain.Analysis) []SummaryCellModel {
	m := analysis.Matrix
	var cells []SummaryCellModel
	rows := append(append([]domain.MatrixRow{}, m.Rows...), m.TotalRow)
	for _, row := range rows {
		for i, cell := range row.Cells {
			cells = append(cells, SummaryCellModel{
				RunID:     analysis.ID,
				GroupName: m.Columns[i],
				Severity:  string(row.Severity),
				Count:     cell.Count,
				Exploits:  cell.Exploit,
			})
		}
	}
	return cells
}

// Ensure interface compliance
var _ ports.Exporter = (*SQLiteStore)(nil)
