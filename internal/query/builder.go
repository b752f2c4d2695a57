// Package query turns loosely-typed caller filters into the normalized
// predicate set consumed by the job repository. It is pure: no storage
// knowledge, no side effects.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/pkg/apperror"

	"github.com/google/uuid"
)

// Accepted date layouts for filter input.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// sortColumns whitelists the sortable fields. Unknown sort keys fail
// validation instead of silently falling back.
var sortColumns = map[string]bool{
	"title":        true,
	"designation":  true,
	"location":     true,
	"vacancy":      true,
	"status":       true,
	"joining_date": true,
	"open_till":    true,
	"created_at":   true,
}

// ParseJobFilter normalizes a flat map of optional filter keys. Absent,
// empty, or whitespace-only values mean "no filter". Text predicates are
// trimmed; vacancy must parse as a positive integer; dates are lower bounds.
func ParseJobFilter(raw map[string]string) (domain.JobFilter, error) {
	f := domain.JobFilter{
		Page:      domain.DefaultPage,
		Limit:     domain.DefaultLimit,
		SortBy:    "joining_date",
		SortOrder: domain.SortDesc,
	}

	text := func(key string) *string {
		v := strings.TrimSpace(raw[key])
		if v == "" {
			return nil
		}
		return &v
	}

	f.Title = text("title")
	f.Description = text("description")
	f.Designation = text("designation")
	f.Location = text("location")
	f.Mode = text("mode")
	f.Experience = text("experience")
	f.Salary = text("salary")

	if v := strings.TrimSpace(raw["vacancy"]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, apperror.Validation(fmt.Sprintf("vacancy filter must be an integer, got %q", v))
		}
		if n <= 0 {
			return f, apperror.Validation("vacancy filter must be a positive integer")
		}
		f.Vacancy = &n
	}

	var err error
	if f.JoiningDateFrom, err = parseDate(raw, "joining_date"); err != nil {
		return f, err
	}
	if f.OpenTillFrom, err = parseDate(raw, "open_till"); err != nil {
		return f, err
	}

	if v := strings.TrimSpace(raw["status"]); v != "" {
		status := strings.ToUpper(v)
		if !domain.ValidJobStatuses[status] {
			return f, apperror.Validation(fmt.Sprintf("invalid status filter %q", v))
		}
		f.Status = &status
	}

	if v := strings.TrimSpace(raw["owner_id"]); v != "" {
		ownerID, err := uuid.Parse(v)
		if err != nil {
			return f, apperror.Validation("owner_id filter must be a valid UUID")
		}
		f.OwnerID = &ownerID
	}

	if v := strings.TrimSpace(raw["page"]); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return f, apperror.Validation("page must be an integer")
		}
		if page >= 1 {
			f.Page = page
		}
	}

	if v := strings.TrimSpace(raw["limit"]); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return f, apperror.Validation("limit must be an integer")
		}
		switch {
		case limit > domain.MaxLimit:
			f.Limit = domain.MaxLimit
		case limit >= 1:
			f.Limit = limit
		}
	}

	if v := strings.TrimSpace(raw["sort_by"]); v != "" {
		key := strings.ToLower(v)
		if !sortColumns[key] {
			return f, apperror.Validation(fmt.Sprintf("unknown sort field %q", v))
		}
		f.SortBy = key
	}

	if v := strings.TrimSpace(raw["sort_order"]); v != "" {
		order := strings.ToLower(v)
		if order != domain.SortAsc && order != domain.SortDesc {
			return f, apperror.Validation(fmt.Sprintf("sort_order must be %q or %q", domain.SortAsc, domain.SortDesc))
		}
		f.SortOrder = order
	}

	return f, nil
}

func parseDate(raw map[string]string, key string) (*time.Time, error) {
	v := strings.TrimSpace(raw[key])
	if v == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.Validation(fmt.Sprintf("%s filter must be an RFC3339 or YYYY-MM-DD date", key))
}

// NewPagination derives page metadata from a total row count.
func NewPagination(totalCount int64, page, limit int) domain.Pagination {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return domain.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && totalCount > 0,
	}
}

// EchoFilters returns the non-default predicates for echoing back in list
// responses.
func EchoFilters(f domain.JobFilter) map[string]string {
	out := map[string]string{}
	put := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	put("title", f.Title)
	put("description", f.Description)
	put("designation", f.Designation)
	put("location", f.Location)
	put("mode", f.Mode)
	put("experience", f.Experience)
	put("salary", f.Salary)
	put("status", f.Status)
	if f.Vacancy != nil {
		out["vacancy"] = strconv.Itoa(*f.Vacancy)
	}
	if f.JoiningDateFrom != nil {
		out["joining_date"] = f.JoiningDateFrom.Format(time.RFC3339)
	}
	if f.OpenTillFrom != nil {
		out["open_till"] = f.OpenTillFrom.Format(time.RFC3339)
	}
	if f.OwnerID != nil {
		out["owner_id"] = f.OwnerID.String()
	}
	return out
}
