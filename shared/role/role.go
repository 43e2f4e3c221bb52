// Package role holds the closed set of account roles. Every authorization site
// switches over Role, so adding a value here forces a review of each of them.
package role

import (
	"errors"
	"fmt"
)

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	Customer          Role = "Customer"
	RestaurantManager Role = "RestaurantManager"
	Admin             Role = "Admin"
)

// All returns every known role in declaration order.
func All() []Role {
	return []Role{Customer, RestaurantManager, Admin}
}

// Parse converts a raw role string into a Role.
func Parse(value string) (Role, error) {
	r := Role(value)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}

	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case Customer, RestaurantManager, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
