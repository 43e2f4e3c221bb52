package permissions

import (
	"booktable/shared/role"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. Skip marks a
// public route that needs no token.
type Permission struct {
	Roles  []role.Role `json:"roles"`
	Path   string      `json:"path"`
	Method string      `json:"method"`
	Skip   bool        `json:"skip"`
}

func (p Permission) Allows(r role.Role) bool {
	return slices.Contains(p.Roles, r)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions reports false when no entry matches the route.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}, false
	}

	return r.Endpoints[idx], true
}

func (r *PermissionData) validate() error {
	for _, endpoint := range r.Endpoints {
		for _, allowed := range endpoint.Roles {
			if _, err := role.Parse(string(allowed)); err != nil {
				return fmt.Errorf("%s %s: %w", endpoint.Method, endpoint.Path, err)
			}
		}
	}

	return nil
}

func Parse(raw []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	if err := permissions.validate(); err != nil {
		return nil, fmt.Errorf("invalid permissions: %w", err)
	}

	return &permissions, nil
}

// Get loads the embedded table. A nil result makes every protected route
// answer 403.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
