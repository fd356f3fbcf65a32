package checklists

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/internal/analyses"
	"github.com/stormsift/stormsift/pkg/pagination"
	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
)

const checklistColumns = `id, inspection_id, site_id, items, status, created_at, updated_at`

type repo struct {
	db         *sql.DB
	analyses   analyses.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a checklist repository implementing the System interface.
func New(
	db *sql.DB,
	analyses analyses.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		analyses:   analyses,
		logger:     logger.With("system", "checklists"),
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
) (*pagination.PageResult[Checklist], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Status")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count checklists: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanChecklist)
	if err != nil {
		return nil, fmt.Errorf("query checklists: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Checklist, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanChecklist)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) FindByInspection(ctx context.Context, inspectionID uuid.UUID) (*Checklist, error) {
	q, args := query.NewBuilder(projection).BuildSingle("InspectionID", inspectionID)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanChecklist)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Checklist, error) {
	if len(cmd.Items) == 0 {
		return nil, ErrEmptyItems
	}

	c, err := r.insert(ctx, cmd.InspectionID, cmd.SiteID, cmd.Items)
	if err != nil {
		return nil, err
	}

	r.logger.Info("checklist created", "id", c.ID, "inspection_id", c.InspectionID, "items", len(c.Items))
	return c, nil
}

// Generate builds a corrective action checklist from an analysis's findings.
// Regenerating replaces the existing checklist for the inspection and resets
// it to draft.
func (r *repo) Generate(ctx context.Context, analysisID uuid.UUID) (*Checklist, error) {
	analysis, err := r.analyses.Find(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("find analysis %s: %w", analysisID, err)
	}

	items := ItemsFromDetections(analysis.Detections)
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	c, err := r.insert(ctx, analysis.InspectionID, analysis.SiteID, items)
	if err != nil {
		return nil, err
	}

	r.logger.Info("checklist generated",
		"id", c.ID,
		"analysis_id", analysisID,
		"inspection_id", c.InspectionID,
		"items", len(c.Items),
	)
	return c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Checklist, error) {
	if !validStatus(cmd.Status) {
		return nil, ErrInvalidStatus
	}
	if len(cmd.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if cmd.Status == StatusComplete {
		for _, item := range cmd.Items {
			if !item.Completed {
				return nil, ErrOpenItems
			}
		}
	}

	itemsJSON, err := json.Marshal(cmd.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	q := `
		UPDATE checklists
		SET items = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + checklistColumns

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Checklist, error) {
		return repository.QueryOne(ctx, tx, q, []any{itemsJSON, cmd.Status, id}, scanChecklist)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("checklist updated", "id", c.ID, "status", c.Status)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM checklists WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("checklist deleted", "id", id)
	return nil
}

func (r *repo) insert(
	ctx context.Context,
	inspectionID uuid.UUID,
	siteID uuid.UUID,
	items []Item,
) (*Checklist, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	q := `
		INSERT INTO checklists(inspection_id, site_id, items)
		VALUES ($1, $2, $3)
		ON CONFLICT (inspection_id) DO UPDATE SET
			site_id = EXCLUDED.site_id,
			items = EXCLUDED.items,
			status = 'draft',
			updated_at = NOW()
		RETURNING ` + checklistColumns

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Checklist, error) {
		return repository.QueryOne(ctx, tx, q, []any{inspectionID, siteID, itemsJSON}, scanChecklist)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &c, nil
}
