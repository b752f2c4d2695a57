package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job status constants
const (
	JobStatusOpen   = "OPEN"
	JobStatusClosed = "CLOSED"
	JobStatusOnHold = "ON_HOLD"
)

// ValidJobStatuses is the closed set of accepted job statuses.
var ValidJobStatuses = map[string]bool{
	JobStatusOpen:   true,
	JobStatusClosed: true,
	JobStatusOnHold: true,
}

type Job struct {
	ID          int64     `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Designation string    `json:"designation" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Mode        string    `json:"mode" validate:"required"`
	Experience  string    `json:"experience" validate:"required"`
	Salary      string    `json:"salary" validate:"required"`
	Vacancy     int       `json:"vacancy" validate:"required,gt=0"`
	JoiningDate time.Time `json:"joining_date" validate:"required"`
	OpenTill    time.Time `json:"open_till" validate:"required"`
	Status      string    `json:"status" validate:"required,oneof=OPEN CLOSED ON_HOLD"`
	IsDeleted   bool      `json:"is_deleted"`
	// Original description is archived here when the job is tombstoned.
	ArchivedDescription *string   `json:"archived_description,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// JobWithOwner extends Job with the posting alumni's profile and, for the
// detail view, the applications submitted by non-deleted students.
type JobWithOwner struct {
	Job
	Owner        *UserProfile  `json:"owner,omitempty"`
	Applications []Application `json:"applications,omitempty"`
}

// JobPatch carries a partial update; nil fields are left untouched.
type JobPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Designation *string    `json:"designation,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Mode        *string    `json:"mode,omitempty"`
	Experience  *string    `json:"experience,omitempty"`
	Salary      *string    `json:"salary,omitempty"`
	Vacancy     *int       `json:"vacancy,omitempty"`
	JoiningDate *time.Time `json:"joining_date,omitempty"`
	OpenTill    *time.Time `json:"open_till,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Designation == nil &&
		p.Location == nil && p.Mode == nil && p.Experience == nil &&
		p.Salary == nil && p.Vacancy == nil && p.JoiningDate == nil &&
		p.OpenTill == nil && p.Status == nil
}

// JobList is the result of a filtered job query.
type JobList struct {
	Jobs       []Job             `json:"jobs"`
	Pagination Pagination        `json:"pagination"`
	Filters    map[string]string `json:"filters"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	// GetByID returns a live (non-deleted) job.
	GetByID(ctx context.Context, id int64) (*Job, error)
	// GetAnyByID returns the job even when tombstoned. Used for ownership
	// checks that must keep working after a soft delete.
	GetAnyByID(ctx context.Context, id int64) (*Job, error)
	// GetOwned returns a live job only when ownerID matches.
	GetOwned(ctx context.Context, id int64, ownerID uuid.UUID) (*Job, error)
	// GetByIDWithDetails returns a live job with owner profile and the
	// applications of non-deleted users, newest first.
	GetByIDWithDetails(ctx context.Context, id int64) (*JobWithOwner, error)
	// Fetch applies the normalized filter; deleted jobs are always excluded.
	Fetch(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	// Update persists the full job row guarded by ownership in the same statement.
	Update(ctx context.Context, job *Job) error
	// SoftDelete tombstones a live owned job. Returns ErrNotFound when the job
	// is absent, already deleted, or owned by someone else.
	SoftDelete(ctx context.Context, id int64, ownerID uuid.UUID) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, ident Identity, job *Job) (*JobWithOwner, error)
	UpdateJob(ctx context.Context, ident Identity, jobID int64, patch *JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, ident Identity, jobID int64) error
	ListJobs(ctx context.Context, rawFilters map[string]string) (*JobList, error)
	GetJobByID(ctx context.Context, jobID int64) (*JobWithOwner, error)
}
