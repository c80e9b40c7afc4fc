package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/plume/internal/tracing"
)

// ErrNoSession is returned when no session row exists for a path.
var ErrNoSession = errors.New("no session recorded for path")

// sessionColumns is the list of columns to select for session queries.
const sessionColumns = `id, path, row, col, mode, updated_at`

// SessionRepository persists editing sessions keyed by file path.
type SessionRepository struct {
	db     *sql.DB
	tracer trace.Tracer
}

// Option configures a SessionRepository.
type Option func(*SessionRepository)

// WithTracer sets the tracer used for save and restore spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *SessionRepository) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewSessionRepository creates a repository over an open connection.
func NewSessionRepository(db *sql.DB, opts ...Option) *SessionRepository {
	r := &SessionRepository{
		db:     db,
		tracer: noop.NewTracerProvider().Tracer("store"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// scanSession scans a row into a sessionModel and converts it.
func scanSession(scanner interface{ Scan(...any) error }) (*Session, error) {
	var model sessionModel
	err := scanner.Scan(
		&model.ID, &model.Path, &model.Row, &model.Col, &model.Mode,
		&model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return model.toSession(), nil
}

// Save persists a session, stamping UpdatedAt. The first save for a path
// inserts a new row and assigns the session a fresh ID; later saves for
// the same path update the stored cursor in place.
func (r *SessionRepository) Save(ctx context.Context, session *Session) error {
	ctx, span := r.tracer.Start(ctx, tracing.SpanSessionSave,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrFilePath, session.Path))

	session.UpdatedAt = time.Now()
	model := toSessionModel(session)

	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET row = ?, col = ?, mode = ?, updated_at = ? WHERE path = ?`,
		model.Row, model.Col, model.Mode, model.UpdatedAt, model.Path,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return fmt.Errorf("failed to update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		span.SetStatus(codes.Ok, "")
		return nil
	}

	session.ID = uuid.NewString()
	model.ID = session.ID
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		model.ID, model.Path, model.Row, model.Col, model.Mode, model.UpdatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("failed to insert session: %w", err)
	}
	span.SetAttributes(attribute.String(tracing.AttrSessionID, session.ID))
	span.SetStatus(codes.Ok, "")
	return nil
}

// FindByPath returns the session stored for an absolute file path, or
// ErrNoSession when the path has never been saved.
func (r *SessionRepository) FindByPath(ctx context.Context, path string) (*Session, error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanSessionRestore,
		trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrFilePath, path))

	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE path = ?`, path)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	span.SetAttributes(attribute.String(tracing.AttrSessionID, session.ID))
	span.SetStatus(codes.Ok, "")
	return session, nil
}

// Delete removes the session stored for a path. Returns ErrNoSession when
// nothing was stored.
func (r *SessionRepository) Delete(ctx context.Context, path string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNoSession
	}
	return nil
}

// PruneOlderThan removes sessions not saved since the cutoff and reports
// how many rows were removed. Keeps the store from accumulating entries
// for files that no longer exist.
func (r *SessionRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE updated_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(affected), nil
}
