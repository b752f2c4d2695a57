package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alumni-portal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, owner_id, title, description, designation, location, mode, experience, salary, vacancy, joining_date, open_till, status, is_deleted, archived_description, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.OwnerID, &job.Title, &job.Description, &job.Designation,
		&job.Location, &job.Mode, &job.Experience, &job.Salary, &job.Vacancy,
		&job.JoiningDate, &job.OpenTill, &job.Status, &job.IsDeleted,
		&job.ArchivedDescription, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (owner_id, title, description, designation, location, mode, experience, salary, vacancy, joining_date, open_till, status, is_deleted, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, FALSE, $13, $14) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.OwnerID, job.Title, job.Description, job.Designation, job.Location,
		job.Mode, job.Experience, job.Salary, job.Vacancy,
		job.JoiningDate, job.OpenTill, job.Status,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND is_deleted = FALSE`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) GetAnyByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) GetOwned(ctx context.Context, id int64, ownerID uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 AND owner_id = $2 AND is_deleted = FALSE`
	job, err := scanJob(r.db.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetByIDWithDetails retrieves a live job with its owner profile and the
// applications of non-deleted users, newest first.
func (r *jobRepo) GetByIDWithDetails(ctx context.Context, id int64) (*domain.JobWithOwner, error) {
	query := `
		SELECT
			j.id, j.owner_id, j.title, j.description, j.designation, j.location,
			j.mode, j.experience, j.salary, j.vacancy, j.joining_date, j.open_till,
			j.status, j.is_deleted, j.archived_description, j.created_at, j.updated_at,
			u.id, u.name, u.email, u.role, u.batch, u.company
		FROM jobs j
		JOIN users u ON j.owner_id = u.id
		WHERE j.id = $1 AND j.is_deleted = FALSE`

	var job domain.JobWithOwner
	var owner domain.UserProfile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.OwnerID, &job.Title, &job.Description, &job.Designation,
		&job.Location, &job.Mode, &job.Experience, &job.Salary, &job.Vacancy,
		&job.JoiningDate, &job.OpenTill, &job.Status, &job.IsDeleted,
		&job.ArchivedDescription, &job.CreatedAt, &job.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.Role, &owner.Batch, &owner.Company,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	job.Owner = &owner

	appsQuery := `
		SELECT a.id, a.job_id, a.applicant_id, a.applied_at, u.name, u.email
		FROM applications a
		JOIN users u ON a.applicant_id = u.id
		WHERE a.job_id = $1 AND u.is_deleted = FALSE
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, appsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.AppliedAt, &app.ApplicantName, &app.ApplicantEmail); err != nil {
			return nil, err
		}
		job.Applications = append(job.Applications, app)
	}
	return &job, rows.Err()
}

// Fetch runs the normalized filter as a dynamic WHERE clause. Deleted jobs
// are excluded unconditionally; sort columns come from the builder whitelist,
// with id as tie-breaker so pagination is stable.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	conditions := []string{"is_deleted = FALSE"}
	args := []interface{}{}
	argIndex := 1

	contains := func(column string, value *string) {
		if value == nil {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, argIndex))
		args = append(args, "%"+*value+"%")
		argIndex++
	}

	contains("title", filter.Title)
	contains("description", filter.Description)
	contains("designation", filter.Designation)
	contains("location", filter.Location)
	contains("mode", filter.Mode)
	contains("experience", filter.Experience)
	contains("salary", filter.Salary)

	if filter.Vacancy != nil {
		conditions = append(conditions, fmt.Sprintf("vacancy = $%d", argIndex))
		args = append(args, *filter.Vacancy)
		argIndex++
	}

	if filter.JoiningDateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("joining_date >= $%d", argIndex))
		args = append(args, *filter.JoiningDateFrom)
		argIndex++
	}

	if filter.OpenTillFrom != nil {
		conditions = append(conditions, fmt.Sprintf("open_till >= $%d", argIndex))
		args = append(args, *filter.OpenTillFrom)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIndex))
		args = append(args, *filter.OwnerID)
		argIndex++
	}

	where := strings.Join(conditions, " AND ")

	direction := "DESC"
	if filter.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	// SortBy is whitelisted by the filter builder, never raw caller input.
	orderBy := fmt.Sprintf("ORDER BY %s %s, id ASC", filter.SortBy, direction)

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s %s LIMIT $%d OFFSET $%d`,
		jobColumns, where, orderBy, argIndex, argIndex+1)
	queryArgs := append(args, filter.Limit, filter.Offset())

	rows, err := r.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.OwnerID, &job.Title, &job.Description, &job.Designation,
			&job.Location, &job.Mode, &job.Experience, &job.Salary, &job.Vacancy,
			&job.JoiningDate, &job.OpenTill, &job.Status, &job.IsDeleted,
			&job.ArchivedDescription, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update writes the full merged row. The owner guard in the WHERE clause
// makes the ownership check and the mutation one atomic statement.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $3,
		description = $4,
		designation = $5,
		location = $6,
		mode = $7,
		experience = $8,
		salary = $9,
		vacancy = $10,
		joining_date = $11,
		open_till = $12,
		status = $13,
		updated_at = $14
	WHERE id = $1 AND owner_id = $2 AND is_deleted = FALSE`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.OwnerID,
		job.Title, job.Description, job.Designation, job.Location, job.Mode,
		job.Experience, job.Salary, job.Vacancy, job.JoiningDate, job.OpenTill,
		job.Status, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete tombstones the description with a marker embedding the id and
// archives the original text. Repeating the call is a no-op NotFound because
// the row is no longer live.
func (r *jobRepo) SoftDelete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	query := `UPDATE jobs SET
		is_deleted = TRUE,
		archived_description = description,
		description = 'DELETED_JOB_' || id,
		updated_at = NOW()
	WHERE id = $1 AND owner_id = $2 AND is_deleted = FALSE`
	result, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
