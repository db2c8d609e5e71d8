package catalog

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

// pgDB is the subset of pgxpool.Pool the catalog repositories need.
// pgxmock satisfies it in tests.
type pgDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresServiceRepository stores services in the relational database.
type PostgresServiceRepository struct {
	db pgDB
}

// NewPostgresServiceRepository initializes a repo backed by pgxpool.
func NewPostgresServiceRepository(pool *pgxpool.Pool) *PostgresServiceRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresServiceRepository{db: pool}
}

// NewPostgresServiceRepositoryWithDB allows injecting mocks for tests.
func NewPostgresServiceRepositoryWithDB(db pgDB) *PostgresServiceRepository {
	return &PostgresServiceRepository{db: db}
}

// List returns all services in insertion order.
func (r *PostgresServiceRepository) List(ctx context.Context) ([]*Service, error) {
	query := `
		SELECT id, title, description, price_cents, duration_min, image_url, created_at
		FROM services
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list services: %w", err)
	}
	defer rows.Close()

	var out []*Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.PriceCents, &svc.DurationMin, &svc.ImageURL, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan service: %w", err)
		}
		out = append(out, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list services: %w", err)
	}
	return out, nil
}

// GetByID fetches a single service.
func (r *PostgresServiceRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	query := `
		SELECT id, title, description, price_cents, duration_min, image_url, created_at
		FROM services
		WHERE id = $1
	`
	var svc Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.Title, &svc.Description, &svc.PriceCents, &svc.DurationMin, &svc.ImageURL, &svc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: select service: %w", err)
	}
	return &svc, nil
}

// Create inserts a new row.
func (r *PostgresServiceRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO services (id, title, description, price_cents, duration_min, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Title,
		req.Description,
		req.PriceCents,
		req.DurationMin,
		req.ImageURL,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("catalog: insert service: %w", err)
	}

	return &Service{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		CreatedAt:   createdAt,
	}, nil
}

// Update applies a partial patch using COALESCE so nil fields stay untouched.
func (r *PostgresServiceRepository) Update(ctx context.Context, id string, patch *ServicePatch) (*Service, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE services
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    price_cents = COALESCE($4, price_cents),
		    duration_min = COALESCE($5, duration_min),
		    image_url = COALESCE($6, image_url)
		WHERE id = $1
		RETURNING id, title, description, price_cents, duration_min, image_url, created_at
	`
	var svc Service
	err := r.db.QueryRow(ctx, query, id,
		patch.Title, patch.Description, patch.PriceCents, patch.DurationMin, patch.ImageURL,
	).Scan(&svc.ID, &svc.Title, &svc.Description, &svc.PriceCents, &svc.DurationMin, &svc.ImageURL, &svc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: update service: %w", err)
	}
	return &svc, nil
}

// Delete removes the row. Appointments keep their service_id reference.
func (r *PostgresServiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// PostgresProfessionalRepository stores professionals in the relational database.
type PostgresProfessionalRepository struct {
	db pgDB
}

// NewPostgresProfessionalRepository initializes a repo backed by pgxpool.
func NewPostgresProfessionalRepository(pool *pgxpool.Pool) *PostgresProfessionalRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresProfessionalRepository{db: pool}
}

// NewPostgresProfessionalRepositoryWithDB allows injecting mocks for tests.
func NewPostgresProfessionalRepositoryWithDB(db pgDB) *PostgresProfessionalRepository {
	return &PostgresProfessionalRepository{db: db}
}

// List returns all professionals in insertion order.
func (r *PostgresProfessionalRepository) List(ctx context.Context) ([]*Professional, error) {
	query := `
		SELECT id, name, specialty, bio, photo_url, created_at
		FROM professionals
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list professionals: %w", err)
	}
	defer rows.Close()

	var out []*Professional
	for rows.Next() {
		var pro Professional
		if err := rows.Scan(&pro.ID, &pro.Name, &pro.Specialty, &pro.Bio, &pro.PhotoURL, &pro.CreatedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan professional: %w", err)
		}
		out = append(out, &pro)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list professionals: %w", err)
	}
	return out, nil
}

// GetByID fetches a single professional.
func (r *PostgresProfessionalRepository) GetByID(ctx context.Context, id string) (*Professional, error) {
	query := `
		SELECT id, name, specialty, bio, photo_url, created_at
		FROM professionals
		WHERE id = $1
	`
	var pro Professional
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pro.ID, &pro.Name, &pro.Specialty, &pro.Bio, &pro.PhotoURL, &pro.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("catalog: select professional: %w", err)
	}
	return &pro, nil
}

// Create inserts a new row.
func (r *PostgresProfessionalRepository) Create(ctx context.Context, req *CreateProfessionalRequest) (*Professional, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO professionals (id, name, specialty, bio, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Specialty,
		req.Bio,
		req.PhotoURL,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("catalog: insert professional: %w", err)
	}

	return &Professional{
		ID:        id,
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		CreatedAt: createdAt,
	}, nil
}

// Update applies a partial patch.
func (r *PostgresProfessionalRepository) Update(ctx context.Context, id string, patch *ProfessionalPatch) (*Professional, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE professionals
		SET name = COALESCE($2, name),
		    specialty = COALESCE($3, specialty),
		    bio = COALESCE($4, bio),
		    photo_url = COALESCE($5, photo_url)
		WHERE id = $1
		RETURNING id, name, specialty, bio, photo_url, created_at
	`
	var pro Professional
	err := r.db.QueryRow(ctx, query, id,
		patch.Name, patch.Specialty, patch.Bio, patch.PhotoURL,
	).Scan(&pro.ID, &pro.Name, &pro.Specialty, &pro.Bio, &pro.PhotoURL, &pro.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("catalog: update professional: %w", err)
	}
	return &pro, nil
}

// Delete removes the row.
func (r *PostgresProfessionalRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM professionals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: delete professional: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}
