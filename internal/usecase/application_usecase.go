package usecase

import (
	"context"
	"errors"
	"time"

	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
	}
}

// Apply creates an application for a student against an open job. The
// service-level existence check is an optimization; the store unique index is
// the authoritative guard, so a losing concurrent insert still surfaces as
// the same Conflict.
func (uc *applicationUsecase) Apply(ctx context.Context, ident domain.Identity, jobID int64) (*domain.Application, error) {
	if ident.Role != domain.RoleStudent {
		return nil, apperror.Forbidden("Only students can apply to jobs")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if job.Status != domain.JobStatusOpen {
		return nil, apperror.Conflict("Job is not open for applications")
	}

	now := time.Now()
	if now.After(job.OpenTill) {
		return nil, apperror.Expired("The application deadline for this job has passed")
	}

	exists, err := uc.applicationRepo.Exists(ctx, jobID, ident.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: ident.UserID,
		AppliedAt:   now,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Internal(err)
	}

	// Trimmed job summary for the response.
	app.JobTitle = &job.Title
	app.JobDesignation = &job.Designation
	app.JobLocation = &job.Location
	app.JobStatus = &job.Status

	return app, nil
}

// Withdraw hard-deletes the student's own application. Withdrawal stays
// possible even after the job closes or is deleted.
func (uc *applicationUsecase) Withdraw(ctx context.Context, ident domain.Identity, jobID int64) error {
	if ident.Role != domain.RoleStudent {
		return apperror.Forbidden("Only students can withdraw applications")
	}
	err := uc.applicationRepo.Delete(ctx, jobID, ident.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("You have not applied to this job")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ListApplicationsForJob returns every application for one of the caller's
// own jobs, newest first. The ownership check looks past the tombstone:
// applications to a soft-deleted job stay visible to its owner.
func (uc *applicationUsecase) ListApplicationsForJob(ctx context.Context, ident domain.Identity, jobID int64) ([]domain.Application, error) {
	if ident.Role != domain.RoleAlumni {
		return nil, apperror.Forbidden("Only alumni can view applications for a job")
	}

	job, err := uc.jobRepo.GetAnyByID(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job.OwnerID != ident.UserID {
		return nil, apperror.Forbidden("You can only view applications for your own jobs")
	}

	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// ListMyApplications returns the student's applications with job summaries.
func (uc *applicationUsecase) ListMyApplications(ctx context.Context, ident domain.Identity) ([]domain.Application, error) {
	if ident.Role != domain.RoleStudent {
		return nil, apperror.Forbidden("Only students can view their applications")
	}
	apps, err := uc.applicationRepo.GetByApplicantID(ctx, ident.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}
