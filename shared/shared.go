package shared

import (
	"booktable/shared/constant"
	"booktable/shared/dto"
	"booktable/shared/role"
	"booktable/shared/timezone"
	"context"
	"reflect"
	"strings"
)

// Identity is the authenticated caller decoded from the bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   role.Role
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, identity.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, identity.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, identity.Role)
}

// IdentityFromContext returns the caller attached by the auth middleware.
// The boolean is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	userRole, _ := ctx.Value(constant.ContextKeyUserRole).(role.Role)

	if userID == constant.Empty {
		return Identity{}, false
	}

	return Identity{UserID: userID, Email: email, Role: userRole}, true
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}
