package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Application represents a student's intent to apply to a job. Rows are never
// updated in place: withdrawal is a hard delete of the row.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
	AppliedAt   time.Time `json:"applied_at"`

	// Joined data for list responses
	ApplicantName  *string `json:"applicant_name,omitempty"`
	ApplicantEmail *string `json:"applicant_email,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
	JobDesignation *string `json:"job_designation,omitempty"`
	JobLocation    *string `json:"job_location,omitempty"`
	JobStatus      *string `json:"job_status,omitempty"`
}

// ApplicationRepository defines data access methods for applications.
type ApplicationRepository interface {
	// Create inserts a new application. The store-level unique index on
	// (job_id, applicant_id) is the authoritative duplicate guard; a
	// violation is remapped to a Conflict error.
	Create(ctx context.Context, app *Application) error
	Exists(ctx context.Context, jobID int64, applicantID uuid.UUID) (bool, error)
	// Delete removes the (job, applicant) row; ErrNotFound when absent.
	Delete(ctx context.Context, jobID int64, applicantID uuid.UUID) error
	// GetByJobID returns every application for a job with applicant profile
	// data, ordered applied_at DESC.
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	// GetByApplicantID returns a student's applications with job summaries,
	// ordered applied_at DESC.
	GetByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
}

// ApplicationUsecase defines business logic for the application lifecycle.
type ApplicationUsecase interface {
	Apply(ctx context.Context, ident Identity, jobID int64) (*Application, error)
	Withdraw(ctx context.Context, ident Identity, jobID int64) error
	ListApplicationsForJob(ctx context.Context, ident Identity, jobID int64) ([]Application, error)
	ListMyApplications(ctx context.Context, ident Identity) ([]Application, error)
}
