package query_test

import (
	"testing"
	"time"

	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/internal/query"
	"alumni-portal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobFilterDefaults(t *testing.T) {
	f, err := query.ParseJobFilter(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultPage, f.Page)
	assert.Equal(t, domain.DefaultLimit, f.Limit)
	assert.Equal(t, "joining_date", f.SortBy)
	assert.Equal(t, domain.SortDesc, f.SortOrder)
	assert.Nil(t, f.Title)
	assert.Nil(t, f.Vacancy)
	assert.Nil(t, f.Status)
}

func TestParseJobFilterTextPredicates(t *testing.T) {
	f, err := query.ParseJobFilter(map[string]string{
		"title":    "  Backend Engineer ",
		"location": "Bangalore",
		"mode":     "   ",
	})
	require.NoError(t, err)

	require.NotNil(t, f.Title)
	assert.Equal(t, "Backend Engineer", *f.Title, "text filters are trimmed")
	require.NotNil(t, f.Location)
	assert.Equal(t, "Bangalore", *f.Location)
	assert.Nil(t, f.Mode, "whitespace-only means no filter")
}

func TestParseJobFilterVacancy(t *testing.T) {
	t.Run("valid integer", func(t *testing.T) {
		f, err := query.ParseJobFilter(map[string]string{"vacancy": "3"})
		require.NoError(t, err)
		require.NotNil(t, f.Vacancy)
		assert.Equal(t, 3, *f.Vacancy)
	})

	t.Run("non-numeric fails validation", func(t *testing.T) {
		_, err := query.ParseJobFilter(map[string]string{"vacancy": "many"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("non-positive fails validation", func(t *testing.T) {
		_, err := query.ParseJobFilter(map[string]string{"vacancy": "0"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestParseJobFilterDates(t *testing.T) {
	t.Run("date only layout", func(t *testing.T) {
		f, err := query.ParseJobFilter(map[string]string{"joining_date": "2026-10-01"})
		require.NoError(t, err)
		require.NotNil(t, f.JoiningDateFrom)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *f.JoiningDateFrom)
	})

	t.Run("rfc3339 layout", func(t *testing.T) {
		f, err := query.ParseJobFilter(map[string]string{"open_till": "2026-10-01T12:00:00Z"})
		require.NoError(t, err)
		require.NotNil(t, f.OpenTillFrom)
	})

	t.Run("garbage fails validation", func(t *testing.T) {
		_, err := query.ParseJobFilter(map[string]string{"open_till": "next week"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestParseJobFilterStatus(t *testing.T) {
	f, err := query.ParseJobFilter(map[string]string{"status": "open"})
	require.NoError(t, err)
	require.NotNil(t, f.Status)
	assert.Equal(t, domain.JobStatusOpen, *f.Status, "status is uppercased")

	_, err = query.ParseJobFilter(map[string]string{"status": "ARCHIVED"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestParseJobFilterPagination(t *testing.T) {
	f, err := query.ParseJobFilter(map[string]string{"page": "3", "limit": "25"})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 50, f.Offset())

	t.Run("limit clamped to maximum", func(t *testing.T) {
		f, err := query.ParseJobFilter(map[string]string{"limit": "500"})
		require.NoError(t, err)
		assert.Equal(t, domain.MaxLimit, f.Limit)
	})

	t.Run("out of range values fall back to defaults", func(t *testing.T) {
		f, err := query.ParseJobFilter(map[string]string{"page": "0", "limit": "-5"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPage, f.Page)
		assert.Equal(t, domain.DefaultLimit, f.Limit)
	})

	t.Run("non-numeric page fails validation", func(t *testing.T) {
		_, err := query.ParseJobFilter(map[string]string{"page": "first"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestParseJobFilterSort(t *testing.T) {
	f, err := query.ParseJobFilter(map[string]string{"sort_by": "open_till", "sort_order": "asc"})
	require.NoError(t, err)
	assert.Equal(t, "open_till", f.SortBy)
	assert.Equal(t, domain.SortAsc, f.SortOrder)

	t.Run("unknown sort field fails instead of falling back", func(t *testing.T) {
		_, err := query.ParseJobFilter(map[string]string{"sort_by": "secret_column"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("bad sort order fails validation", func(t *testing.T) {
		_, err := query.ParseJobFilter(map[string]string{"sort_order": "sideways"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestNewPagination(t *testing.T) {
	t.Run("23 records with limit 10", func(t *testing.T) {
		p := query.NewPagination(23, 3, 10)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, int64(23), p.TotalCount)
		assert.False(t, p.HasNextPage)
		assert.True(t, p.HasPrevPage)
	})

	t.Run("first of several pages", func(t *testing.T) {
		p := query.NewPagination(23, 1, 10)
		assert.Equal(t, 1, p.CurrentPage)
		assert.True(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("empty result", func(t *testing.T) {
		p := query.NewPagination(0, 1, 10)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNextPage)
		assert.False(t, p.HasPrevPage)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := query.NewPagination(20, 2, 10)
		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNextPage)
	})
}

func TestEchoFilters(t *testing.T) {
	f, err := query.ParseJobFilter(map[string]string{
		"title":   "engineer",
		"vacancy": "2",
		"status":  "OPEN",
	})
	require.NoError(t, err)

	echo := query.EchoFilters(f)
	assert.Equal(t, "engineer", echo["title"])
	assert.Equal(t, "2", echo["vacancy"])
	assert.Equal(t, "OPEN", echo["status"])
	assert.NotContains(t, echo, "location")
	assert.NotContains(t, echo, "is_deleted", "deleted exclusion is implicit, never a filter")
}
