package inspections

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/pagination"
	"github.com/stormsift/stormsift/pkg/query"
	"github.com/stormsift/stormsift/pkg/repository"
	"github.com/stormsift/stormsift/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an inspection repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "inspections"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Inspection], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Inspector")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count inspections: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	inspections, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanInspection)
	if err != nil {
		return nil, fmt.Errorf("query inspections: %w", err)
	}

	result := pagination.NewPageResult(inspections, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Inspection, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanInspection)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Inspection, error) {
	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload inspection photo: %w", err)
	}

	q := `
		INSERT INTO inspections(id, site_id, inspector, filename, content_type, size_bytes, storage_key, latitude, longitude, captured_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, site_id, inspector, filename, content_type, size_bytes, storage_key, latitude, longitude, captured_at, notes, status, uploaded_at, updated_at`

	insertArgs := []any{
		id,
		cmd.SiteID,
		cmd.Inspector,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		key,
		cmd.Latitude,
		cmd.Longitude,
		cmd.CapturedAt,
		cmd.Notes,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Inspection, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanInspection)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("inspection created", "id", i.ID, "site_id", i.SiteID, "filename", i.Filename)
	return &i, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	inspection, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM inspections WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, inspection.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", inspection.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("inspection deleted", "id", id)
	return nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Inspection, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	q := `
		UPDATE inspections
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, site_id, inspector, filename, content_type, size_bytes, storage_key, latitude, longitude, captured_at, notes, status, uploaded_at, updated_at`

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Inspection, error) {
		return repository.QueryOne(ctx, tx, q, []any{status, id}, scanInspection)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("inspection status updated", "id", i.ID, "status", i.Status)
	return &i, nil
}

// Photo streams the stored photo for an inspection. The caller owns the
// returned ReadCloser.
func (r *repo) Photo(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	inspection, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	blob, err := r.storage.Download(ctx, inspection.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("download inspection photo: %w", err)
	}

	return blob, inspection.ContentType, nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("inspections/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "photo"
	}
	return url.PathEscape(name)
}
