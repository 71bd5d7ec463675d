package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/webstack-art/FormNest/internal/model"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name      string
		fieldType model.FieldType
		raw       any
		want      any
		wantErr   bool
	}{
		{
			name:      "text: string passthrough",
			fieldType: model.FieldText,
			raw:       "hello",
			want:      "hello",
		},
		{
			name:      "text: number formatted",
			fieldType: model.FieldText,
			raw:       42.0,
			want:      "42",
		},
		{
			name:      "text: list rejected",
			fieldType: model.FieldText,
			raw:       []any{"a"},
			wantErr:   true,
		},
		{
			name:      "number: float passthrough",
			fieldType: model.FieldNumber,
			raw:       3.5,
			want:      3.5,
		},
		{
			name:      "number: decimal string",
			fieldType: model.FieldNumber,
			raw:       " 3.14 ",
			want:      3.14,
		},
		{
			name:      "number: negative string",
			fieldType: model.FieldNumber,
			raw:       "-100",
			want:      -100.0,
		},
		{
			name:      "number: not a number",
			fieldType: model.FieldNumber,
			raw:       "abc",
			wantErr:   true,
		},
		{
			name:      "number: empty string",
			fieldType: model.FieldNumber,
			raw:       "",
			wantErr:   true,
		},
		{
			name:      "email: plain address",
			fieldType: model.FieldEmail,
			raw:       "user@example.com",
			want:      "user@example.com",
		},
		{
			name:      "email: loose rule accepts dotless domain",
			fieldType: model.FieldEmail,
			raw:       "user@localhost",
			want:      "user@localhost",
		},
		{
			name:      "email: missing at sign",
			fieldType: model.FieldEmail,
			raw:       "user.example.com",
			wantErr:   true,
		},
		{
			name:      "email: empty domain",
			fieldType: model.FieldEmail,
			raw:       "user@",
			wantErr:   true,
		},
		{
			name:      "email: empty local part",
			fieldType: model.FieldEmail,
			raw:       "@example.com",
			wantErr:   true,
		},
		{
			name:      "date: normalized",
			fieldType: model.FieldDate,
			raw:       "2024-02-29",
			want:      "2024-02-29",
		},
		{
			name:      "date: not a calendar date",
			fieldType: model.FieldDate,
			raw:       "2023-02-29",
			wantErr:   true,
		},
		{
			name:      "time: normalized",
			fieldType: model.FieldTime,
			raw:       "09:30",
			want:      "09:30",
		},
		{
			name:      "time: out of range",
			fieldType: model.FieldTime,
			raw:       "25:00",
			wantErr:   true,
		},
		{
			name:      "rating: whole float",
			fieldType: model.FieldRating,
			raw:       4.0,
			want:      4,
		},
		{
			name:      "rating: fractional rejected",
			fieldType: model.FieldRating,
			raw:       4.5,
			wantErr:   true,
		},
		{
			name:      "rating: numeric string",
			fieldType: model.FieldRating,
			raw:       "5",
			want:      5,
		},
		{
			name:      "checkbox: string slice passthrough",
			fieldType: model.FieldCheckbox,
			raw:       []string{"a", "b"},
			want:      []string{"a", "b"},
		},
		{
			name:      "checkbox: interface slice",
			fieldType: model.FieldCheckbox,
			raw:       []any{"a", "b"},
			want:      []string{"a", "b"},
		},
		{
			name:      "checkbox: bare scalar wrapped",
			fieldType: model.FieldCheckbox,
			raw:       "a",
			want:      []string{"a"},
		},
		{
			name:      "checkbox: map rejected",
			fieldType: model.FieldCheckbox,
			raw:       map[string]any{"a": 1},
			wantErr:   true,
		},
		{
			name:      "dropdown: string value",
			fieldType: model.FieldDropdown,
			raw:       "a",
			want:      "a",
		},
		{
			name:      "unknown type rejected",
			fieldType: model.FieldType("slider"),
			raw:       "x",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.fieldType, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Coerce(%v, %v) = %v, want error", tt.fieldType, tt.raw, got)
				}
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("Coerce error = %v, want ErrTypeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce(%v, %v) unexpected error: %v", tt.fieldType, tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Coerce(%v, %v) = %#v, want %#v", tt.fieldType, tt.raw, got, tt.want)
			}
		})
	}
}

// Coercion must be idempotent: feeding a coerced value back through Coerce
// yields the same value for every field type.
func TestCoerceIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("text coercion is idempotent", prop.ForAll(
		func(s string) bool {
			return coerceIdempotent(t, model.FieldText, s)
		},
		gen.AnyString(),
	))

	properties.Property("number coercion is idempotent", prop.ForAll(
		func(f float64) bool {
			return coerceIdempotent(t, model.FieldNumber, f)
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("rating coercion is idempotent", prop.ForAll(
		func(n int) bool {
			return coerceIdempotent(t, model.FieldRating, n)
		},
		gen.IntRange(1, 10),
	))

	properties.Property("checkbox coercion is idempotent", prop.ForAll(
		func(values []string) bool {
			return coerceIdempotent(t, model.FieldCheckbox, values)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func coerceIdempotent(t *testing.T, ft model.FieldType, raw any) bool {
	t.Helper()
	once, err := Coerce(ft, raw)
	if err != nil {
		t.Fatalf("Coerce(%v, %v): %v", ft, raw, err)
	}
	twice, err := Coerce(ft, once)
	if err != nil {
		t.Fatalf("Coerce(%v, coerced %v): %v", ft, once, err)
	}
	return reflect.DeepEqual(once, twice)
}

func TestCardinalityTable(t *testing.T) {
	tests := []struct {
		fieldType     model.FieldType
		cardinality   Cardinality
		optionBounded bool
	}{
		{model.FieldText, CardinalityScalar, false},
		{model.FieldTextarea, CardinalityScalar, false},
		{model.FieldNumber, CardinalityScalar, false},
		{model.FieldEmail, CardinalityScalar, false},
		{model.FieldPhone, CardinalityScalar, false},
		{model.FieldDate, CardinalityScalar, false},
		{model.FieldTime, CardinalityScalar, false},
		{model.FieldDropdown, CardinalityOneOfOptions, true},
		{model.FieldCheckbox, CardinalityMulti, true},
		{model.FieldRadio, CardinalityOneOfOptions, true},
		{model.FieldFile, CardinalityScalar, false},
		{model.FieldRating, CardinalityScalar, false},
	}

	for _, tt := range tests {
		if !KnownType(tt.fieldType) {
			t.Errorf("KnownType(%v) = false", tt.fieldType)
		}
		if got := FieldCardinality(tt.fieldType); got != tt.cardinality {
			t.Errorf("FieldCardinality(%v) = %v, want %v", tt.fieldType, got, tt.cardinality)
		}
		if got := IsOptionBounded(tt.fieldType); got != tt.optionBounded {
			t.Errorf("IsOptionBounded(%v) = %v, want %v", tt.fieldType, got, tt.optionBounded)
		}
	}

	if KnownType(model.FieldType("slider")) {
		t.Error("KnownType accepted a type outside the closed set")
	}
}
