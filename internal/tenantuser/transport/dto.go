package transport

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDList is the wire shape for removal targets: clients may send a single
// id string or an array of id strings. Decoding normalizes either shape to
// a whitespace-trimmed, de-duplicated list so business logic never branches
// on the runtime shape.
type IDList []string

// UnmarshalJSON accepts string or []string.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = normalizeIDs([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("ids must be a string or an array of strings")
	}
	*l = normalizeIDs(many)
	return nil
}

// UUIDs parses the list into uuid values.
func (l IDList) UUIDs() ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(l))
	for _, raw := range l {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", raw)
		}
		out = append(out, id)
	}
	return out, nil
}

func normalizeIDs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// UpdateRolesRequest contains the proposed role set for one member.
// Roles is a pointer so an absent field is distinguishable from an empty
// list: empty demotes to no explicit role, absent is rejected.
type UpdateRolesRequest struct {
	Roles *[]string `json:"roles"`
}

// RemoveUsersRequest contains the removal target set.
type RemoveUsersRequest struct {
	IDs IDList `json:"ids"`
}

// InviteUsersRequest contains addresses to invite and the role set they
// receive.
type InviteUsersRequest struct {
	Emails []string  `json:"emails" validate:"required,min=1,dive,email"`
	Roles  *[]string `json:"roles"`
}

// MemberResponse represents a tenant member in API responses.
type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberListResponse wraps a list of tenant members.
type MemberListResponse struct {
	Items []MemberResponse `json:"items"`
	Total int              `json:"total"`
}
