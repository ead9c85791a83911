package reports

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

	"github.com/mbaumgart/perdiem/pkg/pagination"
	"github.com/mbaumgart/perdiem/pkg/query"
	"github.com/mbaumgart/perdiem/pkg/repository"
	"github.com/mbaumgart/perdiem/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a report repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "reports"),
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
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "TicketID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	reports, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(reports, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rep, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rep, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Report, error) {
	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload report blob: %w", err)
	}

	q := `
		INSERT INTO reports(id, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, filename, content_type, size_bytes, page_count, storage_key,
				  status, uploaded_at, updated_at,
				  NULL::text, NULL::boolean, NULL::timestamptz`

	insertArgs := []any{
		id,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
	}

	rep, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanReport)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report created", "id", rep.ID, "filename", rep.Filename)
	return &rep, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, rep.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", rep.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Report, []byte, error) {
	rep, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := r.storage.Download(ctx, rep.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download report blob: %w", err)
	}
	defer blob.Close()

	data, err := io.ReadAll(blob)
	if err != nil {
		return nil, nil, fmt.Errorf("read report blob: %w", err)
	}

	return rep, data, nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("reports/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "report"
	}
	return url.PathEscape(name)
}
