package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/webstack-art/FormNest/internal/model"
)

// ErrTypeMismatch is returned by Coerce when a raw value cannot be converted
// to the shape its field type demands.
var ErrTypeMismatch = errors.New("value does not match field type")

// Cardinality describes how many values a field type carries.
type Cardinality int

const (
	// CardinalityScalar is a single free-form value.
	CardinalityScalar Cardinality = iota
	// CardinalityMulti is a list of values (checkbox).
	CardinalityMulti
	// CardinalityOneOfOptions is a single value drawn from the field's
	// option list (dropdown, radio).
	CardinalityOneOfOptions
)

// fieldTypeInfo is one row of the field type capability table.
type fieldTypeInfo struct {
	cardinality   Cardinality
	optionBounded bool
	coerce        func(raw any) (any, error)
}

// fieldTypes is the closed capability table for every field type. Adding a
// field type means adding a row here, nowhere else.
var fieldTypes = map[model.FieldType]fieldTypeInfo{
	model.FieldText:     {CardinalityScalar, false, coerceString},
	model.FieldTextarea: {CardinalityScalar, false, coerceString},
	model.FieldNumber:   {CardinalityScalar, false, coerceNumber},
	model.FieldEmail:    {CardinalityScalar, false, coerceEmail},
	model.FieldPhone:    {CardinalityScalar, false, coerceString},
	model.FieldDate:     {CardinalityScalar, false, coerceDate},
	model.FieldTime:     {CardinalityScalar, false, coerceTime},
	model.FieldDropdown: {CardinalityOneOfOptions, true, coerceString},
	model.FieldCheckbox: {CardinalityMulti, true, coerceStringList},
	model.FieldRadio:    {CardinalityOneOfOptions, true, coerceString},
	model.FieldFile:     {CardinalityScalar, false, coerceString},
	model.FieldRating:   {CardinalityScalar, false, coerceRating},
}

// KnownType reports whether t is part of the closed field type set.
func KnownType(t model.FieldType) bool {
	_, ok := fieldTypes[t]
	return ok
}

// FieldCardinality returns the value cardinality of a field type. Unknown
// types report scalar; they never pass Coerce anyway.
func FieldCardinality(t model.FieldType) Cardinality {
	return fieldTypes[t].cardinality
}

// IsOptionBounded reports whether answers for this type must be drawn from
// the field's option list. Only these types are eligible for frequency
// aggregation.
func IsOptionBounded(t model.FieldType) bool {
	return fieldTypes[t].optionBounded
}

// Coerce converts a raw answer value to the canonical shape for its field
// type: string for text-like types, float64 for number, int for rating,
// []string for checkbox. Coercion is idempotent: feeding a coerced value
// back in yields the same value.
func Coerce(t model.FieldType, raw any) (any, error) {
	info, ok := fieldTypes[t]
	if !ok {
		return nil, fmt.Errorf("%w: unknown field type %q", ErrTypeMismatch, t)
	}
	return info.coerce(raw)
}

func coerceString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return nil, fmt.Errorf("%w: expected a scalar, got %T", ErrTypeMismatch, raw)
	}
}

func coerceNumber(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: number must be finite", ErrTypeMismatch)
		}
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("%w: empty string is not a number", ErrTypeMismatch)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q is not a finite number", ErrTypeMismatch, v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: expected a number, got %T", ErrTypeMismatch, raw)
	}
}

// coerceEmail applies the same deliberately loose rule the legacy backend
// shipped with: there must be an "@" with a non-empty local part and a
// non-empty domain segment. It is not RFC 5322 validation and is not meant
// to be.
func coerceEmail(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected an email string, got %T", ErrTypeMismatch, raw)
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return nil, fmt.Errorf("%w: %q is not an email address", ErrTypeMismatch, s)
	}
	domain := s[at+1:]
	if strings.ContainsAny(domain, " \t") || strings.ContainsAny(s[:at], " \t") {
		return nil, fmt.Errorf("%w: %q is not an email address", ErrTypeMismatch, s)
	}
	return s, nil
}

func coerceDate(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected a date string, got %T", ErrTypeMismatch, raw)
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrTypeMismatch, s)
	}
	return d.Format("2006-01-02"), nil
}

func coerceTime(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected a time string, got %T", ErrTypeMismatch, raw)
	}
	d, err := time.Parse("15:04", s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a HH:MM time", ErrTypeMismatch, s)
	}
	return d.Format("15:04"), nil
}

func coerceRating(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: rating must be a whole number", ErrTypeMismatch)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a rating", ErrTypeMismatch, v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: expected a rating, got %T", ErrTypeMismatch, raw)
	}
}

func coerceStringList(raw any) (any, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, err := coerceString(e)
			if err != nil {
				return nil, err
			}
			out = append(out, s.(string))
		}
		return out, nil
	case string:
		// A bare scalar counts as a one-element selection.
		return []string{v}, nil
	case nil:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("%w: expected a value list, got %T", ErrTypeMismatch, raw)
	}
}
