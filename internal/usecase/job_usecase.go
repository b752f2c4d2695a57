package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/internal/query"
	"alumni-portal-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
	}
}

// CreateJob persists a new posting for an alumni caller. All validation runs
// before any store call; authorization lives here, not in the handlers.
func (u *jobUsecase) CreateJob(ctx context.Context, ident domain.Identity, job *domain.Job) (*domain.JobWithOwner, error) {
	if ident.Role != domain.RoleAlumni {
		return nil, apperror.Forbidden("Only alumni can post jobs")
	}

	job.Title = strings.TrimSpace(job.Title)
	job.Description = strings.TrimSpace(job.Description)
	job.Designation = strings.TrimSpace(job.Designation)
	job.Location = strings.TrimSpace(job.Location)
	job.Mode = strings.TrimSpace(job.Mode)
	job.Experience = strings.TrimSpace(job.Experience)
	job.Salary = strings.TrimSpace(job.Salary)

	if err := u.validate.Struct(job); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	now := time.Now()
	if !job.OpenTill.After(now) {
		return nil, apperror.Validation("open_till must be in the future")
	}
	if !job.JoiningDate.After(now) {
		return nil, apperror.Validation("joining_date must be in the future")
	}

	job.OwnerID = ident.UserID
	job.IsDeleted = false
	job.CreatedAt = now
	job.UpdatedAt = now

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	created, err := u.jobRepo.GetByIDWithDetails(ctx, job.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return created, nil
}

// UpdateJob merges the supplied fields into the owner's live job. Fields
// absent from the patch are left untouched; every supplied field is validated
// with the same rules as create.
func (u *jobUsecase) UpdateJob(ctx context.Context, ident domain.Identity, jobID int64, patch *domain.JobPatch) (*domain.Job, error) {
	if ident.Role != domain.RoleAlumni {
		return nil, apperror.Forbidden("Only alumni can update jobs")
	}
	if patch == nil || patch.IsEmpty() {
		return nil, apperror.Validation("No fields supplied for update")
	}

	job, err := u.jobRepo.GetOwned(ctx, jobID, ident.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	if err := applyPatch(job, patch, now); err != nil {
		return nil, err
	}
	job.UpdatedAt = now

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func applyPatch(job *domain.Job, patch *domain.JobPatch, now time.Time) error {
	setText := func(dst *string, src *string, field string) error {
		if src == nil {
			return nil
		}
		v := strings.TrimSpace(*src)
		if v == "" {
			return apperror.Validation(fmt.Sprintf("%s cannot be blank", field))
		}
		*dst = v
		return nil
	}

	if err := setText(&job.Title, patch.Title, "title"); err != nil {
		return err
	}
	if err := setText(&job.Description, patch.Description, "description"); err != nil {
		return err
	}
	if err := setText(&job.Designation, patch.Designation, "designation"); err != nil {
		return err
	}
	if err := setText(&job.Location, patch.Location, "location"); err != nil {
		return err
	}
	if err := setText(&job.Mode, patch.Mode, "mode"); err != nil {
		return err
	}
	if err := setText(&job.Experience, patch.Experience, "experience"); err != nil {
		return err
	}
	if err := setText(&job.Salary, patch.Salary, "salary"); err != nil {
		return err
	}

	if patch.Vacancy != nil {
		if *patch.Vacancy <= 0 {
			return apperror.Validation("vacancy must be a positive integer")
		}
		job.Vacancy = *patch.Vacancy
	}

	if patch.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*patch.Status))
		if !domain.ValidJobStatuses[status] {
			return apperror.Validation(fmt.Sprintf("invalid status %q", *patch.Status))
		}
		job.Status = status
	}

	if patch.JoiningDate != nil {
		if !patch.JoiningDate.After(now) {
			return apperror.Validation("joining_date must be in the future")
		}
		job.JoiningDate = *patch.JoiningDate
	}

	if patch.OpenTill != nil {
		if !patch.OpenTill.After(now) {
			return apperror.Validation("open_till must be in the future")
		}
		job.OpenTill = *patch.OpenTill
	}

	return nil
}

// DeleteJob soft-deletes the owner's job. A second call finds no live row and
// reports NotFound rather than tombstoning twice.
func (u *jobUsecase) DeleteJob(ctx context.Context, ident domain.Identity, jobID int64) error {
	if ident.Role != domain.RoleAlumni {
		return apperror.Forbidden("Only alumni can delete jobs")
	}
	err := u.jobRepo.SoftDelete(ctx, jobID, ident.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ListJobs normalizes the raw filters, runs the query, and derives pagination
// metadata. Deleted jobs never appear regardless of caller input.
func (u *jobUsecase) ListJobs(ctx context.Context, rawFilters map[string]string) (*domain.JobList, error) {
	filter, err := query.ParseJobFilter(rawFilters)
	if err != nil {
		return nil, err
	}

	jobs, total, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}

	return &domain.JobList{
		Jobs:       jobs,
		Pagination: query.NewPagination(total, filter.Page, filter.Limit),
		Filters:    query.EchoFilters(filter),
	}, nil
}

// GetJobByID returns a live job with owner profile and its applications.
func (u *jobUsecase) GetJobByID(ctx context.Context, jobID int64) (*domain.JobWithOwner, error) {
	job, err := u.jobRepo.GetByIDWithDetails(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}
