package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/internal/inspections"
	"github.com/stormsift/stormsift/internal/prompts"
	"github.com/stormsift/stormsift/internal/weather"
	"github.com/stormsift/stormsift/internal/workflow"
	"github.com/stormsift/stormsift/pkg/pagination"
	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
	"github.com/stormsift/stormsift/pkg/storage"
)

const analysisColumns = `id, inspection_id, site_id, detections, is_compliant, confidence,
			  consensus_level, requires_manual_review, review_reason, model_results,
			  risk_score, rain_triggered, processing_time_ms, analyzed_at,
			  reviewed_by, reviewed_at`

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	engine *ensemble.Engine,
	logger *slog.Logger,
	pagination pagination.Config,
	storage storage.System,
	insp inspections.System,
	prompts prompts.System,
	weather weather.System,
) System {
	rt := &workflow.Runtime{
		Engine:      engine,
		Storage:     storage,
		Inspections: insp,
		Prompts:     prompts,
		Weather:     weather,
		Logger:      logger.With("workflow", "analyze"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ReviewReason", "ReviewedBy")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) FindByInspection(ctx context.Context, inspectionID uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("InspectionID", inspectionID)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

// Analyze runs the ensemble workflow for an inspection photo and stores the
// verdict. Re-running replaces the prior analysis and clears any review.
// The inspection moves to review when the ensemble flags the result, and
// straight to filed when the verdict is trusted.
func (r *repo) Analyze(ctx context.Context, inspectionID uuid.UUID) (*Analysis, error) {
	result, err := workflow.Execute(ctx, r.rt, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("analyze inspection %s: %w", inspectionID, err)
	}

	detectionsJSON, err := json.Marshal(result.Ensemble.Detections)
	if err != nil {
		return nil, fmt.Errorf("marshal detections: %w", err)
	}

	modelResultsJSON, err := json.Marshal(result.Ensemble.ModelResults)
	if err != nil {
		return nil, fmt.Errorf("marshal model results: %w", err)
	}

	var reviewReason *string
	if result.Ensemble.ReviewReason != "" {
		reviewReason = &result.Ensemble.ReviewReason
	}

	status := inspections.StatusFiled
	if result.Ensemble.RequiresManualReview {
		status = inspections.StatusReview
	}

	upsertQ := `
		INSERT INTO analyses(
			inspection_id, site_id, detections, is_compliant, confidence,
			consensus_level, requires_manual_review, review_reason,
			model_results, risk_score, rain_triggered, processing_time_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (inspection_id) DO UPDATE SET
			site_id = EXCLUDED.site_id,
			detections = EXCLUDED.detections,
			is_compliant = EXCLUDED.is_compliant,
			confidence = EXCLUDED.confidence,
			consensus_level = EXCLUDED.consensus_level,
			requires_manual_review = EXCLUDED.requires_manual_review,
			review_reason = EXCLUDED.review_reason,
			model_results = EXCLUDED.model_results,
			risk_score = EXCLUDED.risk_score,
			rain_triggered = EXCLUDED.rain_triggered,
			processing_time_ms = EXCLUDED.processing_time_ms,
			analyzed_at = NOW(),
			reviewed_by = NULL,
			reviewed_at = NULL
		RETURNING ` + analysisColumns

	upsertArgs := []any{
		inspectionID,
		result.SiteID,
		detectionsJSON,
		result.Ensemble.IsCompliant,
		result.Ensemble.Confidence,
		result.Ensemble.ConsensusLevel,
		result.Ensemble.RequiresManualReview,
		reviewReason,
		modelResultsJSON,
		result.RiskScore,
		result.RainTriggered,
		result.Ensemble.ProcessingTimeMs,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		an, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanAnalysis)
		if err != nil {
			return Analysis{}, fmt.Errorf("upsert analysis: %w", err)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE inspections SET status = $1, updated_at = NOW() WHERE id = $2",
			status, inspectionID,
		); err != nil {
			return Analysis{}, fmt.Errorf("update inspection status: %w", err)
		}

		return an, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("inspection analyzed",
		"id", a.ID,
		"inspection_id", inspectionID,
		"compliant", a.IsCompliant,
		"consensus", a.ConsensusLevel,
		"risk_score", a.RiskScore,
		"manual_review", a.RequiresManualReview,
	)
	return &a, nil
}

// Review resolves a flagged analysis. The reviewer's verdict, when present,
// overrides the ensemble compliance call, and the inspection files.
func (r *repo) Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Analysis, error) {
	reviewQ := `
		UPDATE analyses
		SET reviewed_by = $1,
			reviewed_at = NOW(),
			is_compliant = COALESCE($2, is_compliant),
			requires_manual_review = false
		WHERE id = $3
		RETURNING ` + analysisColumns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		an, err := repository.QueryOne(ctx, tx, reviewQ,
			[]any{cmd.ReviewedBy, cmd.IsCompliant, id},
			scanAnalysis,
		)
		if err != nil {
			return Analysis{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE inspections SET status = 'filed', updated_at = NOW() WHERE id = $1 AND status = 'review'",
			an.InspectionID,
		); err != nil {
			return Analysis{}, ErrInvalidStatus
		}

		return an, nil
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("analysis reviewed",
		"id", a.ID,
		"reviewed_by", a.ReviewedBy,
		"compliant", a.IsCompliant,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM analyses WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analysis deleted", "id", id)
	return nil
}
