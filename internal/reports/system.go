package reports

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for report domain operations.
type System interface {
	Handler() *Handler

	Summaries(ctx context.Context) ([]SiteSummary, error)
	SiteSummary(ctx context.Context, siteID uuid.UUID) (*SiteSummary, error)
	ExportCSV(ctx context.Context, siteID uuid.UUID) (*Export, error)
}
