package reports

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/analyses"
	"github.com/stormsift/stormsift/pkg/pagination"
	"github.com/stormsift/stormsift/pkg/storage"
)

const summarySelect = `
	SELECT site_id,
		   COUNT(*),
		   COUNT(*) FILTER (WHERE is_compliant),
		   COUNT(*) FILTER (WHERE NOT is_compliant),
		   COUNT(*) FILTER (WHERE requires_manual_review),
		   COUNT(*) FILTER (WHERE rain_triggered),
		   COALESCE(AVG(risk_score), 0),
		   COALESCE(MAX(risk_score), 0),
		   MAX(analyzed_at)
	FROM analyses`

var exportHeader = []string{
	"analysis_id", "inspection_id", "site_id", "is_compliant", "confidence",
	"consensus_level", "requires_manual_review", "review_reason", "detections",
	"risk_score", "rain_triggered", "analyzed_at", "reviewed_by",
}

type repo struct {
	db       *sql.DB
	storage  storage.System
	analyses analyses.System
	logger   *slog.Logger
}

// New creates a report repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	analysesSys analyses.System,
	logger *slog.Logger,
) System {
	return &repo{
		db:       db,
		storage:  store,
		analyses: analysesSys,
		logger:   logger.With("system", "reports"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// Summaries aggregates analysis outcomes per site across all sites.
func (r *repo) Summaries(ctx context.Context) ([]SiteSummary, error) {
	q := summarySelect + " GROUP BY site_id ORDER BY site_id"

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query site summaries: %w", err)
	}
	defer rows.Close()

	summaries := []SiteSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site summaries: %w", err)
	}

	return summaries, nil
}

// SiteSummary aggregates analysis outcomes for one site.
func (r *repo) SiteSummary(ctx context.Context, siteID uuid.UUID) (*SiteSummary, error) {
	q := summarySelect + " WHERE site_id = $1 GROUP BY site_id"

	s, err := scanSummary(r.db.QueryRowContext(ctx, q, siteID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoAnalyses
		}
		return nil, fmt.Errorf("query site summary: %w", err)
	}

	return &s, nil
}

// ExportCSV writes all analyses for a site as CSV to blob storage and
// returns the export metadata. The key embeds the generation timestamp so
// successive exports never overwrite each other.
func (r *repo) ExportCSV(ctx context.Context, siteID uuid.UUID) (*Export, error) {
	siteFilter := analyses.Filters{SiteID: &siteID}

	var records [][]string
	page := pagination.PageRequest{Page: 1, PageSize: 100}

	for {
		result, err := r.analyses.List(ctx, page, siteFilter)
		if err != nil {
			return nil, fmt.Errorf("list analyses for export: %w", err)
		}

		for _, a := range result.Data {
			records = append(records, exportRecord(a))
		}

		if page.Page >= result.TotalPages {
			break
		}
		page.Page++
	}

	if len(records) == 0 {
		return nil, ErrNoAnalyses
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}

	generatedAt := time.Now().UTC()
	key := fmt.Sprintf("reports/%s/analyses-%s.csv", siteID, generatedAt.Format("20060102-150405"))

	if err := r.storage.Upload(ctx, key, &buf, "text/csv"); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	r.logger.Info("export generated", "site_id", siteID, "key", key, "rows", len(records))

	return &Export{
		SiteID:      siteID,
		StorageKey:  key,
		Rows:        len(records),
		GeneratedAt: generatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (SiteSummary, error) {
	var s SiteSummary
	err := row.Scan(
		&s.SiteID,
		&s.Analyses,
		&s.Compliant,
		&s.NonCompliant,
		&s.PendingReview,
		&s.RainTriggered,
		&s.AvgRiskScore,
		&s.MaxRiskScore,
		&s.LastAnalyzedAt,
	)
	return s, err
}

func exportRecord(a analyses.Analysis) []string {
	reviewReason := ""
	if a.ReviewReason != nil {
		reviewReason = *a.ReviewReason
	}

	reviewedBy := ""
	if a.ReviewedBy != nil {
		reviewedBy = *a.ReviewedBy
	}

	detections := ""
	for i, d := range a.Detections {
		if i > 0 {
			detections += "; "
		}
		detections += fmt.Sprintf("%s (%s)", d.Class, d.Severity)
	}

	return []string{
		a.ID.String(),
		a.InspectionID.String(),
		a.SiteID.String(),
		strconv.FormatBool(a.IsCompliant),
		strconv.FormatFloat(a.Confidence, 'f', 4, 64),
		string(a.ConsensusLevel),
		strconv.FormatBool(a.RequiresManualReview),
		reviewReason,
		detections,
		strconv.FormatFloat(a.RiskScore, 'f', 2, 64),
		strconv.FormatBool(a.RainTriggered),
		a.AnalyzedAt.UTC().Format(time.RFC3339),
		reviewedBy,
	}
}
