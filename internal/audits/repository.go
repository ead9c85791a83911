package audits

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/mbaumgart/perdiem/internal/prompts"
	"github.com/mbaumgart/perdiem/internal/reports"
	"github.com/mbaumgart/perdiem/internal/workflow"
	"github.com/mbaumgart/perdiem/pkg/backend"
	"github.com/mbaumgart/perdiem/pkg/pagination"
	"github.com/mbaumgart/perdiem/pkg/query"
	"github.com/mbaumgart/perdiem/pkg/repository"
)

const auditColumns = `id, report_id, ticket_id, approved, comment,
		ticket_found, total_ok, periods_match, allowance_ok,
		trip_days, expected_allowance, model_name, provider_name,
		audited_at, reviewed_by, reviewed_at`

type repo struct {
	db      *sql.DB
	rt      *workflow.Runtime
	reports reports.System
	logger  *slog.Logger

	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
// It internally constructs the workflow runtime from the provided dependencies.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	be backend.System,
	rep reports.System,
	prompts prompts.System,
) System {
	rt := &workflow.Runtime{
		Agent:   agent,
		Backend: be,
		Prompts: prompts,
		Logger:  logger.With("workflow", "audit"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		reports:    rep,
		logger:     logger.With("system", "audits"),
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
) (*pagination.PageResult[Audit], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "TicketID", "Comment")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audits: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAudit)
	if err != nil {
		return nil, fmt.Errorf("query audits: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Audit, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAudit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) FindByReport(ctx context.Context, reportID uuid.UUID) (*Audit, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ReportID", reportID)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAudit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Audit(ctx context.Context, reportID uuid.UUID) (*Audit, error) {
	rep, data, err := r.reports.Download(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", reportID, err)
	}

	result, err := workflow.Execute(ctx, r.rt, rep.Filename, data)
	if err != nil {
		return nil, fmt.Errorf("audit report %s: %w", reportID, err)
	}

	upsertQ := `
		INSERT INTO audits(
			report_id, ticket_id, approved, comment,
			ticket_found, total_ok, periods_match, allowance_ok,
			trip_days, expected_allowance, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (report_id) DO UPDATE SET
			ticket_id = EXCLUDED.ticket_id,
			approved = EXCLUDED.approved,
			comment = EXCLUDED.comment,
			ticket_found = EXCLUDED.ticket_found,
			total_ok = EXCLUDED.total_ok,
			periods_match = EXCLUDED.periods_match,
			allowance_ok = EXCLUDED.allowance_ok,
			trip_days = EXCLUDED.trip_days,
			expected_allowance = EXCLUDED.expected_allowance,
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			audited_at = NOW(),
			reviewed_by = NULL,
			reviewed_at = NULL
		RETURNING ` + auditColumns

	st := result.State
	upsertArgs := []any{
		reportID,
		st.Header.TicketID,
		st.Decision.Approve,
		st.Decision.Comment,
		st.Findings.TicketFound,
		st.Findings.TotalOK,
		st.Findings.PeriodsMatch,
		st.Findings.AllowanceOK,
		st.Periods.TripDays,
		st.Allowance.Expected,
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Audit, error) {
		audit, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanAudit)
		if err != nil {
			return Audit{}, fmt.Errorf("upsert audit: %w", err)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE reports SET status = 'audited', updated_at = NOW() WHERE id = $1",
			reportID,
		); err != nil {
			return Audit{}, fmt.Errorf("update report status: %w", err)
		}

		return audit, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("report audited",
		"id", a.ID,
		"report_id", reportID,
		"ticket_id", a.TicketID,
		"approved", a.Approved,
		"ticket_updated", result.Updated,
	)
	return &a, nil
}

// Review records a human sign-off on an audit. An audit accepts one review;
// changing a reviewed outcome goes through Override, and a re-run of Audit
// clears the review fields.
func (r *repo) Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Audit, error) {
	reviewQ := `
		UPDATE audits
		SET reviewed_by = $1, reviewed_at = NOW()
		WHERE id = $2
		RETURNING ` + auditColumns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Audit, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		current, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanAudit)
		if err != nil {
			return Audit{}, err
		}
		if err := reviewable(&current); err != nil {
			return Audit{}, err
		}

		return repository.QueryOne(ctx, tx, reviewQ, []any{cmd.ReviewedBy, id}, scanAudit)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("audit reviewed",
		"id", a.ID,
		"reviewed_by", a.ReviewedBy,
	)
	return &a, nil
}

func (r *repo) Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*Audit, error) {
	overrideQ := `
		UPDATE audits
		SET approved = $1, comment = $2, reviewed_by = $3, reviewed_at = NOW()
		WHERE id = $4
		RETURNING ` + auditColumns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Audit, error) {
		return repository.QueryOne(ctx, tx, overrideQ,
			[]any{cmd.Approved, cmd.Comment, cmd.UpdatedBy, id},
			scanAudit,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("audit overridden",
		"id", a.ID,
		"approved", a.Approved,
		"updated_by", cmd.UpdatedBy,
	)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM audits WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("audit deleted", "id", id)
	return nil
}
