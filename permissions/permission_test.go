package permissions_test

import (
	"booktable/permissions"
	"booktable/shared/role"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		path    string
		method  string
		skip    bool
		allowed []role.Role
		denied  []role.Role
	}{
		{path: "/api/auth/login", method: http.MethodPost, skip: true},
		{path: "/api/customer/book", method: http.MethodPost, allowed: []role.Role{role.Customer}, denied: []role.Role{role.RestaurantManager, role.Admin}},
		{path: "/api/restaurant/delete/{id}", method: http.MethodDelete, allowed: []role.Role{role.RestaurantManager}, denied: []role.Role{role.Customer, role.Admin}},
		{path: "/api/admin/analytics", method: http.MethodGet, allowed: []role.Role{role.Admin}, denied: []role.Role{role.Customer, role.RestaurantManager}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			permission, ok := data.FindPermissions(tt.path, tt.method)
			require.True(t, ok)
			assert.Equal(t, tt.skip, permission.Skip)

			for _, r := range tt.allowed {
				assert.True(t, permission.Allows(r), r)
			}

			for _, r := range tt.denied {
				assert.False(t, permission.Allows(r), r)
			}
		})
	}

	_, ok := data.FindPermissions("/api/customer/book", http.MethodGet)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	t.Run("unknown role", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/x","method":"GET","roles":["Chef"]}]}`))
		require.Error(t, err)
		assert.ErrorIs(t, err, role.ErrUnknownRole)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := permissions.Parse([]byte(`{`))
		assert.Error(t, err)
	})
}
