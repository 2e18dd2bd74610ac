package ports

import (
	"context"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// TableSource loads a fully materialized record table from an external
// scanner export. The core never touches the filesystem itself.
type TableSource interface {
	Load(path string) (*domain.Table, error)
}

// Exporter persists the results of an analysis run: per-group tables, the
// summary matrix, or both. Implementations decide the format.
type Exporter interface {
	Export(ctx context.Context, analysis *domain.Analysis) error
}

// Renderer presents the summary matrix to a human (console, PDF, ...).
type Renderer interface {
	Render(analysis *domain.Analysis) error
}
