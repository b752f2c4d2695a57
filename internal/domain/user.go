package domain

import "github.com/google/uuid"

// Role constants as supplied by the identity provider.
const (
	RoleAlumni  = "ALUMNI"
	RoleStudent = "STUDENT"
)

// Identity is the verified {user, role} pair attached to every request by the
// identity middleware. The core trusts it unconditionally and never
// re-verifies credentials.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// UserProfile is the read-only projection of a portal user joined into job
// and application responses. User accounts themselves are owned by the
// identity service, not by this backend.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Batch     *string   `json:"batch,omitempty"`
	Company   *string   `json:"company,omitempty"`
	IsDeleted bool      `json:"-"`
}
