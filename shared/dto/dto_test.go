package dto_test

import (
	"booktable/shared/constant"
	"booktable/shared/dto"
	"booktable/shared/model"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 4, 11, 19, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2025, 4, 12, 9, 30, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.NewMetadata("manager-1", createdAt))
	assert.Equal(t, metadata.CreatedAt, metadata.ModifiedAt)

	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt})

	parsedCreated, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	require.NoError(t, err)
	assert.True(t, parsedCreated.Equal(createdAt))

	parsedModified, err := time.Parse(constant.DateFormat, metadata.ModifiedAt)
	require.NoError(t, err)
	assert.True(t, parsedModified.Equal(modifiedAt))
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dto.StringList
		wantErr bool
	}{
		{name: "array", input: `{"photos":["a.png","b.png"]}`, want: dto.StringList{"a.png", "b.png"}},
		{name: "comma string", input: `{"photos":"a.png, b.png,,"}`, want: dto.StringList{"a.png", "b.png"}},
		{name: "empty string", input: `{"photos":""}`, want: dto.StringList{}},
		{name: "absent", input: `{}`, want: nil},
		{name: "number", input: `{"photos":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Photos dto.StringList `json:"photos"`
			}

			err := json.Unmarshal([]byte(tt.input), &body)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, body.Photos)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "qualified equality joined with and",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq, Table: "restaurants"},
					dto.Filter{Field: "approved", Value: false, Operator: dto.FilterOperatorNotEq},
				},
			},
			wantWhere: "(restaurants.id = :id AND approved != :approved)",
			wantArgs:  map[string]any{"id": "r-1", "approved": false},
		},
		{
			name: "nested or group defaults outer to and",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "city", Value: "Pune", Operator: dto.FilterOperatorEq},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "status", ArgName: "s1", Value: "Booked", Operator: dto.FilterOperatorEq},
							dto.Filter{Field: "status", ArgName: "s2", Value: "Cancelled", Operator: dto.FilterOperatorEq},
						},
					},
				},
			},
			wantWhere: "(city = :city AND (status = :s1 OR status = :s2))",
			wantArgs:  map[string]any{"city": "Pune", "s1": "Booked", "s2": "Cancelled"},
		},
		{
			name: "in expands one placeholder per value",
			group: dto.FilterGroup{
				Filters: []any{dto.Filter{Field: "id", Value: []string{"a", "b"}, Operator: dto.FilterOperatorIn}},
			},
			wantWhere: "(id IN (:id_0, :id_1))",
			wantArgs:  map[string]any{"id_0": "a", "id_1": "b"},
		},
		{
			name: "empty in matches nothing",
			group: dto.FilterGroup{
				Filters: []any{dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn}},
			},
			wantWhere: "(FALSE)",
			wantArgs:  map[string]any{},
		},
		{
			name: "unknown operators are skipped",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
					dto.Filter{Field: "name", Value: "x", Operator: "raw"},
				},
			},
			wantWhere: "(deleted_at IS NULL)",
			wantArgs:  map[string]any{},
		},
		{
			name:      "no filters",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
