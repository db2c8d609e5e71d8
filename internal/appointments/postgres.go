package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code raised when the partial unique
// index on (professional_id, date, time) for non-cancelled rows rejects a
// write. That index is what makes check-and-append atomic across processes.
const uniqueViolation = "23505"

// pgDB is the subset of pgxpool.Pool the ledger needs. pgxmock satisfies it
// in tests.
type pgDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresLedger stores appointments in the relational database.
type PostgresLedger struct {
	db pgDB
}

// NewPostgresLedger initializes a ledger backed by pgxpool.
func NewPostgresLedger(pool *pgxpool.Pool) *PostgresLedger {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresLedger{db: pool}
}

// NewPostgresLedgerWithDB allows injecting mocks for tests.
func NewPostgresLedgerWithDB(db pgDB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

const apptColumns = "id, client_name, client_phone, date, time, status, service_id, professional_id, created_at"

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.Date,
		&appt.Time,
		&appt.Status,
		&appt.ServiceID,
		&appt.ProfessionalID,
		&appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (l *PostgresLedger) list(ctx context.Context, query string, args ...any) ([]*Appointment, error) {
	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: query: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: rows: %w", err)
	}
	return out, nil
}

// ListAll returns every appointment in insertion order.
func (l *PostgresLedger) ListAll(ctx context.Context) ([]*Appointment, error) {
	return l.list(ctx, `SELECT `+apptColumns+` FROM appointments ORDER BY created_at, id`)
}

// ListForAdmin returns every appointment sorted by (date, time, id).
func (l *PostgresLedger) ListForAdmin(ctx context.Context) ([]*Appointment, error) {
	return l.list(ctx, `SELECT `+apptColumns+` FROM appointments ORDER BY date, time, id`)
}

// GetByID fetches a single appointment.
func (l *PostgresLedger) GetByID(ctx context.Context, id string) (*Appointment, error) {
	appt, err := scanAppointment(l.db.QueryRow(ctx, `SELECT `+apptColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select: %w", err)
	}
	return appt, nil
}

// FindActive returns non-cancelled appointments for (date, professional).
func (l *PostgresLedger) FindActive(ctx context.Context, date, professionalID string) ([]*Appointment, error) {
	query := `
		SELECT ` + apptColumns + `
		FROM appointments
		WHERE date = $1 AND professional_id = $2 AND status <> 'cancelled'
		ORDER BY time
	`
	return l.list(ctx, query, date, professionalID)
}

// Append inserts a new pending appointment. The partial unique index
// enforces the slot invariant; a violation maps to ErrSlotTaken.
func (l *PostgresLedger) Append(ctx context.Context, req *AppendRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO appointments (id, client_name, client_phone, date, time, status, service_id, professional_id)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7)
		RETURNING created_at
	`
	var createdAt time.Time
	err := l.db.QueryRow(ctx, query,
		id,
		req.ClientName,
		req.ClientPhone,
		req.Date,
		req.Time,
		req.ServiceID,
		req.ProfessionalID,
	).Scan(&createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("appointments: insert: %w", err)
	}

	return &Appointment{
		ID:             id,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Date:           req.Date,
		Time:           req.Time,
		Status:         StatusPending,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		CreatedAt:      createdAt,
	}, nil
}

// UpdateFields applies a partial patch. A patched slot that collides with
// another active appointment trips the same unique index as Append.
func (l *PostgresLedger) UpdateFields(ctx context.Context, id string, patch *Patch) (*Appointment, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE appointments
		SET client_name = COALESCE($2, client_name),
		    client_phone = COALESCE($3, client_phone),
		    date = COALESCE($4, date),
		    time = COALESCE($5, time),
		    service_id = COALESCE($6, service_id),
		    professional_id = COALESCE($7, professional_id)
		WHERE id = $1
		RETURNING ` + apptColumns
	appt, err := scanAppointment(l.db.QueryRow(ctx, query, id,
		patch.ClientName,
		patch.ClientPhone,
		patch.Date,
		patch.Time,
		patch.ServiceID,
		patch.ProfessionalID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("appointments: update: %w", err)
	}
	return appt, nil
}

// SetStatus applies a lifecycle transition. The allowed source states are
// part of the UPDATE predicate, so a concurrent transition cannot slip
// through between read and write.
func (l *PostgresLedger) SetStatus(ctx context.Context, id string, next Status) (*Appointment, error) {
	if !next.Valid() {
		return nil, ErrBadStatus
	}

	from := allowedFrom(next)
	query := `
		UPDATE appointments
		SET status = $2
		WHERE id = $1 AND status = ANY($3)
		RETURNING ` + apptColumns
	appt, err := scanAppointment(l.db.QueryRow(ctx, query, id, next, from))
	if err == nil {
		return appt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointments: set status: %w", err)
	}

	// Either the id is unknown or the current status forbids the move.
	if _, err := l.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrInvalidTransition
}

// allowedFrom returns the statuses that may transition into next.
func allowedFrom(next Status) []string {
	var from []string
	for s, targets := range transitions {
		for _, t := range targets {
			if t == next {
				from = append(from, string(s))
			}
		}
	}
	return from
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
