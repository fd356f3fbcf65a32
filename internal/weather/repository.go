package weather

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/pagination"
	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
)

const rainWindow = 24 * time.Hour

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a weather repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "weather"),
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
) (*pagination.PageResult[Observation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Source")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count observations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	observations, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanObservation)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}

	result := pagination.NewPageResult(observations, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Observation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanObservation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Observation, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO rainfall(site_id, inches, source, observed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, site_id, inches, source, observed_at, recorded_at`

	args := []any{cmd.SiteID, cmd.Inches, cmd.Source, cmd.ObservedAt}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Observation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanObservation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("observation recorded", "id", o.ID, "site_id", o.SiteID, "inches", o.Inches)
	return &o, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM rainfall WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("observation deleted", "id", id)
	return nil
}

// Status evaluates the rain trigger for a site over the trailing 24-hour window.
func (r *repo) Status(ctx context.Context, siteID uuid.UUID) (*RainStatus, error) {
	end := time.Now()
	start := end.Add(-rainWindow)

	q := `
		SELECT COALESCE(SUM(inches), 0), COUNT(*)
		FROM rainfall
		WHERE site_id = $1 AND observed_at >= $2 AND observed_at <= $3`

	var total float64
	var count int
	if err := r.db.QueryRowContext(ctx, q, siteID, start, end).Scan(&total, &count); err != nil {
		return nil, fmt.Errorf("sum rainfall: %w", err)
	}

	return &RainStatus{
		SiteID:       siteID,
		TotalInches:  total,
		Threshold:    RainThresholdInches,
		Triggered:    total >= RainThresholdInches,
		WindowStart:  start,
		WindowEnd:    end,
		Observations: count,
	}, nil
}

func (r *repo) RainTriggered(ctx context.Context, siteID uuid.UUID) (bool, error) {
	status, err := r.Status(ctx, siteID)
	if err != nil {
		return false, err
	}
	return status.Triggered, nil
}

func validateCommand(cmd CreateCommand) error {
	if cmd.SiteID == uuid.Nil {
		return ErrMissingSite
	}
	if cmd.Inches < 0 {
		return ErrInvalidInches
	}
	if cmd.ObservedAt.IsZero() {
		return ErrMissingTime
	}
	return nil
}
