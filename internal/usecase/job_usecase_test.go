package usecase_test

import (
	"context"
	"testing"
	"time"

	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/internal/usecase"
	"alumni-portal-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func alumniIdent() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Role: domain.RoleAlumni}
}

func studentIdent() domain.Identity {
	return domain.Identity{UserID: uuid.New(), Role: domain.RoleStudent}
}

func validJob() *domain.Job {
	return &domain.Job{
		Title:       "Backend Engineer",
		Description: "Build the job board",
		Designation: "SDE-2",
		Location:    "Remote",
		Mode:        "Full-time",
		Experience:  "3-5 years",
		Salary:      "18-24 LPA",
		Vacancy:     2,
		JoiningDate: time.Now().AddDate(0, 0, 10),
		OpenTill:    time.Now().AddDate(0, 0, 5),
		Status:      domain.JobStatusOpen,
	}
}

func TestCreateJob(t *testing.T) {
	validate := validator.New()

	t.Run("student cannot post", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		_, err := uc.CreateJob(context.Background(), studentIdent(), validJob())
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("missing required field fails before any store call", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		job := validJob()
		job.Title = "   "
		_, err := uc.CreateJob(context.Background(), alumniIdent(), job)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("zero vacancy rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		job := validJob()
		job.Vacancy = 0
		_, err := uc.CreateJob(context.Background(), alumniIdent(), job)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		job := validJob()
		job.Status = "DRAFT"
		_, err := uc.CreateJob(context.Background(), alumniIdent(), job)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("past deadline rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		job := validJob()
		job.OpenTill = time.Now().Add(-time.Hour)
		_, err := uc.CreateJob(context.Background(), alumniIdent(), job)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("past joining date rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		job := validJob()
		job.JoiningDate = time.Now().Add(-time.Hour)
		_, err := uc.CreateJob(context.Background(), alumniIdent(), job)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("valid input persists a live job owned by the caller", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ident := alumniIdent()

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).
			Return(nil).
			Run(func(args mock.Arguments) {
				j := args.Get(1).(*domain.Job)
				assert.Equal(t, ident.UserID, j.OwnerID)
				assert.False(t, j.IsDeleted)
				j.ID = 42
			})
		mockRepo.On("GetByIDWithDetails", mock.Anything, int64(42)).
			Return(&domain.JobWithOwner{
				Job:   domain.Job{ID: 42, OwnerID: ident.UserID},
				Owner: &domain.UserProfile{ID: ident.UserID, Role: domain.RoleAlumni},
			}, nil)

		created, err := uc.CreateJob(context.Background(), ident, validJob())
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		require.NotNil(t, created.Owner)
		assert.Equal(t, ident.UserID, created.Owner.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateJob(t *testing.T) {
	validate := validator.New()

	t.Run("non-owner sees not found and nothing is mutated", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ident := alumniIdent()

		mockRepo.On("GetOwned", mock.Anything, int64(7), ident.UserID).
			Return(nil, domain.ErrNotFound)

		title := "New title"
		_, err := uc.UpdateJob(context.Background(), ident, 7, &domain.JobPatch{Title: &title})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		_, err := uc.UpdateJob(context.Background(), alumniIdent(), 7, &domain.JobPatch{})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("student cannot update", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		title := "x"
		_, err := uc.UpdateJob(context.Background(), studentIdent(), 7, &domain.JobPatch{Title: &title})
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("only supplied fields are merged", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ident := alumniIdent()

		existing := validJob()
		existing.ID = 7
		existing.OwnerID = ident.UserID
		originalLocation := existing.Location

		mockRepo.On("GetOwned", mock.Anything, int64(7), ident.UserID).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		title := "  Senior Backend Engineer "
		vacancy := 5
		updated, err := uc.UpdateJob(context.Background(), ident, 7, &domain.JobPatch{
			Title:   &title,
			Vacancy: &vacancy,
		})
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", updated.Title)
		assert.Equal(t, 5, updated.Vacancy)
		assert.Equal(t, originalLocation, updated.Location, "untouched field survives")
		mockRepo.AssertExpectations(t)
	})

	t.Run("supplied past date fails and skips the write", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ident := alumniIdent()

		existing := validJob()
		existing.ID = 7
		existing.OwnerID = ident.UserID
		mockRepo.On("GetOwned", mock.Anything, int64(7), ident.UserID).Return(existing, nil)

		past := time.Now().Add(-time.Hour)
		_, err := uc.UpdateJob(context.Background(), ident, 7, &domain.JobPatch{OpenTill: &past})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("blank supplied field rejected", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ident := alumniIdent()

		existing := validJob()
		existing.ID = 7
		existing.OwnerID = ident.UserID
		mockRepo.On("GetOwned", mock.Anything, int64(7), ident.UserID).Return(existing, nil)

		blank := "   "
		_, err := uc.UpdateJob(context.Background(), ident, 7, &domain.JobPatch{Description: &blank})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestDeleteJob(t *testing.T) {
	validate := validator.New()

	t.Run("delete then delete again", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ident := alumniIdent()

		mockRepo.On("SoftDelete", mock.Anything, int64(9), ident.UserID).Return(nil).Once()
		mockRepo.On("SoftDelete", mock.Anything, int64(9), ident.UserID).Return(domain.ErrNotFound).Once()

		require.NoError(t, uc.DeleteJob(context.Background(), ident, 9))

		err := uc.DeleteJob(context.Background(), ident, 9)
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		mockRepo.AssertExpectations(t)
	})

	t.Run("student cannot delete", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		err := uc.DeleteJob(context.Background(), studentIdent(), 9)
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "SoftDelete")
	})
}

func TestListJobs(t *testing.T) {
	validate := validator.New()

	t.Run("pagination metadata from total count", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		mockRepo.On("Fetch", mock.Anything, mock.AnythingOfType("domain.JobFilter")).
			Return([]domain.Job{{ID: 21}, {ID: 22}, {ID: 23}}, int64(23), nil).
			Run(func(args mock.Arguments) {
				f := args.Get(1).(domain.JobFilter)
				assert.Equal(t, 3, f.Page)
				assert.Equal(t, 10, f.Limit)
				assert.Equal(t, 20, f.Offset())
			})

		list, err := uc.ListJobs(context.Background(), map[string]string{"page": "3"})
		require.NoError(t, err)
		assert.Len(t, list.Jobs, 3)
		assert.Equal(t, 3, list.Pagination.TotalPages)
		assert.False(t, list.Pagination.HasNextPage)
		assert.True(t, list.Pagination.HasPrevPage)
	})

	t.Run("invalid filter never reaches the store", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		_, err := uc.ListJobs(context.Background(), map[string]string{"vacancy": "lots"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Fetch")
	})

	t.Run("empty result is an empty slice with echoed filters", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		mockRepo.On("Fetch", mock.Anything, mock.AnythingOfType("domain.JobFilter")).
			Return(nil, int64(0), nil)

		list, err := uc.ListJobs(context.Background(), map[string]string{"status": "OPEN"})
		require.NoError(t, err)
		assert.NotNil(t, list.Jobs)
		assert.Empty(t, list.Jobs)
		assert.Equal(t, "OPEN", list.Filters["status"])
	})
}

func TestGetJobByID(t *testing.T) {
	validate := validator.New()

	t.Run("deleted or absent job is not found", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)

		mockRepo.On("GetByIDWithDetails", mock.Anything, int64(404)).
			Return(nil, domain.ErrNotFound)

		_, err := uc.GetJobByID(context.Background(), 404)
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("returns owner and applications", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validate)
		ownerID := uuid.New()

		mockRepo.On("GetByIDWithDetails", mock.Anything, int64(5)).
			Return(&domain.JobWithOwner{
				Job:   domain.Job{ID: 5, OwnerID: ownerID},
				Owner: &domain.UserProfile{ID: ownerID},
				Applications: []domain.Application{
					{ID: 2, JobID: 5, AppliedAt: time.Now()},
					{ID: 1, JobID: 5, AppliedAt: time.Now().Add(-time.Hour)},
				},
			}, nil)

		job, err := uc.GetJobByID(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, job.Applications, 2)
		assert.True(t, job.Applications[0].AppliedAt.After(job.Applications[1].AppliedAt), "newest first")
	})
}
