package postgres

import (
	"context"
	"errors"

	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique index on (job_id,
// applicant_id) is the authoritative guard against concurrent duplicate
// submissions; its violation surfaces as a Conflict.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, applicant_id, applied_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, app.JobID, app.ApplicantID, app.AppliedAt).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("You have already applied to this job")
		}
		return err
	}
	return nil
}

// Exists checks whether an application already exists for the job/applicant pair.
func (r *applicationRepo) Exists(ctx context.Context, jobID int64, applicantID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, applicantID).Scan(&exists)
	return exists, err
}

// Delete removes the application row for the pair; withdrawal is a hard delete.
func (r *applicationRepo) Delete(ctx context.Context, jobID int64, applicantID uuid.UUID) error {
	query := `DELETE FROM applications WHERE job_id = $1 AND applicant_id = $2`
	result, err := r.db.Exec(ctx, query, jobID, applicantID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByJobID retrieves all applications for a job with applicant profile data.
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.applied_at, u.name, u.email
		FROM applications a
		LEFT JOIN users u ON a.applicant_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.AppliedAt,
			&app.ApplicantName, &app.ApplicantEmail,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByApplicantID retrieves a student's applications with job summaries.
func (r *applicationRepo) GetByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.applied_at,
		       j.title, j.designation, j.location, j.status
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.applicant_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.AppliedAt,
			&app.JobTitle, &app.JobDesignation, &app.JobLocation, &app.JobStatus,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
