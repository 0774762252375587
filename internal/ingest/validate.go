package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forkful/recipe-catalog/backend/internal/model"
)

// ErrorKind classifies why a record was rejected.
type ErrorKind string

const (
	MissingField  ErrorKind = "missing_field"
	InvalidNumber ErrorKind = "invalid_number"
)

// FieldError names the offending field of a rejected record.
type FieldError struct {
	Field string
	Kind  ErrorKind
}

func (e *FieldError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("missing required field %q", e.Field)
	default:
		return fmt.Sprintf("field %q is not a valid non-negative number", e.Field)
	}
}

// ValidateRecord turns one untyped decoded JSON object into a Recipe or
// rejects it. It is pure: no store access, no mutation of the input. The id
// is never taken from the input; the store assigns it on insert.
func ValidateRecord(raw map[string]interface{}) (*model.Recipe, error) {
	title, ok := optionalString(raw["title"])
	if !ok || title == nil {
		return nil, &FieldError{Field: "title", Kind: MissingField}
	}

	rec := &model.Recipe{Title: *title}

	rec.Cuisine, _ = optionalString(raw["cuisine"])
	rec.Description, _ = optionalString(raw["description"])
	rec.Serves, _ = optionalString(raw["serves"])

	rating, err := optionalNumber(raw, "rating")
	if err != nil {
		return nil, err
	}
	rec.Rating = rating

	for _, f := range []struct {
		name string
		dst  **int
	}{
		{"prep_time", &rec.PrepTime},
		{"cook_time", &rec.CookTime},
		{"total_time", &rec.TotalTime},
	} {
		v, err := optionalNumber(raw, f.name)
		if err != nil {
			return nil, err
		}
		if v != nil {
			minutes := int(*v)
			*f.dst = &minutes
		}
	}

	rec.Nutrients = optionalNutrients(raw["nutrients"])

	return rec, nil
}

// optionalString trims string input and maps absent or empty values to nil.
// ok is false when the value is present but not a string.
func optionalString(v interface{}) (*string, bool) {
	switch s := v.(type) {
	case nil:
		return nil, true
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil, true
		}
		return &trimmed, true
	default:
		return nil, false
	}
}

// optionalNumber accepts JSON numbers and numeric strings. Non-numeric or
// negative input rejects the whole record rather than being coerced.
func optionalNumber(raw map[string]interface{}, field string) (*float64, error) {
	v, present := raw[field]
	if !present || v == nil {
		return nil, nil
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &FieldError{Field: field, Kind: InvalidNumber}
		}
		f = parsed
	default:
		return nil, &FieldError{Field: field, Kind: InvalidNumber}
	}

	if f < 0 {
		return nil, &FieldError{Field: field, Kind: InvalidNumber}
	}
	return &f, nil
}

// optionalNutrients passes the nutrient mapping through opaquely. Values are
// stringified leniently; a nutrients value that is not a mapping at all is
// treated as absent.
func optionalNutrients(v interface{}) model.NutrientMap {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(model.NutrientMap, len(m))
	for k, val := range m {
		switch s := val.(type) {
		case string:
			out[k] = s
		case float64:
			out[k] = strconv.FormatFloat(s, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(s)
		}
	}
	return out
}
