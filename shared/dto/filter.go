package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq    = "eq"
	FilterOperatorNotEq = "not_eq"
	FilterOperatorIn    = "in"
	FilterIsNull        = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter renders one predicate with sqlx named parameters. Table qualifies the
// column when the statement touches more than one table.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	name := f.ArgName
	if name == "" {
		name = f.Field
	}

	switch f.Operator {
	case FilterOperatorEq, FilterOperatorNotEq:
		args[name] = f.Value

		op := "="
		if f.Operator == FilterOperatorNotEq {
			op = "!="
		}

		return fmt.Sprintf("%s %s :%s", f.column(), op, name), args
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
			return "", args
		}

		// an empty set matches nothing
		if val.Len() == 0 {
			return "FALSE", args
		}

		placeholders := make([]string, val.Len())

		for i := range val.Len() {
			key := fmt.Sprintf("%s_%d", name, i)
			args[key] = val.Index(i).Interface()
			placeholders[i] = ":" + key
		}

		return fmt.Sprintf("%s IN (%s)", f.column(), strings.Join(placeholders, ", ")), args
	case FilterIsNull:
		return f.column() + " IS NULL", args
	}

	return "", args
}

// FilterGroup joins Filter and nested FilterGroup values with Operator,
// which defaults to AND.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch v := item.(type) {
		case Filter:
			where, arg = v.GetWhereClause()
		case FilterGroup:
			where, arg = v.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, arg)
	}

	if len(parts) == 0 {
		return "", args
	}

	op := f.Operator
	if op == "" {
		op = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+op+" ") + ")", args
}
