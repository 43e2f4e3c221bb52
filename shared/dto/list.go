package dto

import (
	"booktable/shared/constant"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string, e.g. ["a","b"] or "a, b".
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil

		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = clean(items)

		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("expected a string or an array of strings: %w", err)
	}

	*l = ParseStringList(joined)

	return nil
}

// ParseStringList splits a comma-separated form value.
func ParseStringList(joined string) StringList {
	return clean(strings.Split(joined, constant.Comma))
}

func clean(items []string) StringList {
	out := StringList{}

	for _, item := range items {
		if item = strings.TrimSpace(item); item != constant.Empty {
			out = append(out, item)
		}
	}

	return out
}
