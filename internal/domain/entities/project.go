package entities

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project groups tracked repositories for reward distribution.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project owner roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role is one of owner, admin, member.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// ProjectOwner links a GitHub identity to a project with a role.
type ProjectOwner struct {
	ProjectID string    `json:"project_id"`
	Username  string    `json:"github_username"`
	Role      string    `json:"role"`
	AddedAt   time.Time `json:"added_at"`
}

// GenerateProjectID derives a stable human-readable project ID from the
// project name plus the creation timestamp. Names that slugify to nothing
// fall back to a random ID.
func GenerateProjectID(name string, now time.Time) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		if ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = uuid.NewString()
	}
	return slug + "_" + strconv.FormatInt(now.Unix(), 10)
}
