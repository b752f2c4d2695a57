package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sort directions accepted by job queries.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// JobFilter is the normalized, storage-agnostic predicate set derived from
// caller input. Nil pointers mean "filter not applied". Text predicates are
// case-insensitive substring matches; date predicates are lower bounds.
// The is_deleted exclusion is implicit and never carried here, so callers
// cannot override it.
type JobFilter struct {
	Title       *string
	Description *string
	Designation *string
	Location    *string
	Mode        *string
	Experience  *string
	Salary      *string

	Vacancy *int

	JoiningDateFrom *time.Time
	OpenTillFrom    *time.Time

	Status  *string
	OwnerID *uuid.UUID

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Offset derives the row offset for the requested page.
func (f JobFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination is the derived page metadata returned with every job list.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}
