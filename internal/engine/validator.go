package engine

import (
	"fmt"
	"time"

	"github.com/webstack-art/FormNest/internal/model"
)

// Validate checks a candidate answer set against a form schema and returns
// either an acceptance carrying normalized answers or a rejection listing
// every violation found.
//
// Validate is a pure function: it performs no I/O and mutates neither the
// schema nor the raw answers. Persistence and the response-count increment
// are the caller's business, after an acceptance. submissionsSoFar is the
// caller's snapshot of the stored submission count; two racing callers near
// the limit can both read the same snapshot and transiently over-accept,
// which is an accepted trade-off of keeping the engine stateless.
//
// The schema itself is assumed well-formed (unique field ids, options
// present on option-bounded fields, no rule cycles) - that is the form
// service's authoring contract. Validation failure is reported exclusively
// against the submission.
func Validate(schema *model.FormSchema, rawAnswers []model.Answer, now time.Time, submissionsSoFar int) model.ValidationResult {
	// Form-level gate: a closed form rejects any submission regardless of
	// content.
	if exp := schema.Settings.ExpirationDate; exp != nil && now.After(*exp) {
		return model.Reject([]model.Violation{{
			Reason:  model.ReasonFormClosed,
			Message: "this form is no longer accepting responses",
		}})
	}
	if max := schema.Settings.MaxSubmissions; max > 0 && submissionsSoFar >= max {
		return model.Reject([]model.Violation{{
			Reason:  model.ReasonFormClosed,
			Message: "maximum number of submissions reached",
		}})
	}

	var violations []model.Violation

	// Index answers by field id. Duplicates and unknown ids are submission
	// shape errors.
	byField := make(map[string]any, len(rawAnswers))
	for _, a := range rawAnswers {
		if schema.FieldByID(a.FieldID) == nil {
			violations = append(violations, model.Violation{
				FieldID: a.FieldID,
				Reason:  model.ReasonUnknownField,
				Message: fmt.Sprintf("field %q does not exist in this form", a.FieldID),
			})
			continue
		}
		if _, dup := byField[a.FieldID]; dup {
			violations = append(violations, model.Violation{
				FieldID: a.FieldID,
				Reason:  model.ReasonTypeMismatch,
				Message: fmt.Sprintf("field %q was answered more than once", a.FieldID),
			})
			continue
		}
		byField[a.FieldID] = a.Value
	}

	active := ActiveFields(schema, byField)

	normalized := make([]model.Answer, 0, len(byField))
	for i := range schema.Fields {
		f := &schema.Fields[i]
		value, answered := byField[f.ID]
		_, isActive := active[f.ID]

		if !answered || isEmptyValue(value) {
			// Required fields must carry a value, but only while active:
			// a conditionally hidden field is exempt.
			if f.Required && isActive {
				violations = append(violations, model.Violation{
					FieldID: f.ID,
					Reason:  model.ReasonMissingRequired,
					Message: fmt.Sprintf("field %q is required", f.Label),
				})
			}
			continue
		}

		coerced, err := Coerce(f.Type, value)
		if err != nil {
			violations = append(violations, model.Violation{
				FieldID: f.ID,
				Reason:  reasonForCoercion(f.Type),
				Message: err.Error(),
			})
			continue
		}

		if IsOptionBounded(f.Type) {
			if v, ok := outOfOptions(f, coerced); !ok {
				violations = append(violations, model.Violation{
					FieldID: f.ID,
					Reason:  model.ReasonTypeMismatch,
					Message: fmt.Sprintf("%q is not an option of field %q", v, f.Label),
				})
				continue
			}
		}

		// Answers for currently hidden fields are validated but are not
		// part of the accepted record.
		if isActive {
			normalized = append(normalized, model.Answer{FieldID: f.ID, Value: coerced})
		}
	}

	if len(violations) > 0 {
		return model.Reject(violations)
	}
	return model.Accept(normalized)
}

// reasonForCoercion maps a coercion failure to its violation reason. Email
// is a pattern rule; everything else is a type rule.
func reasonForCoercion(t model.FieldType) model.ViolationReason {
	if t == model.FieldEmail {
		return model.ReasonPatternMismatch
	}
	return model.ReasonTypeMismatch
}

// outOfOptions checks coerced option-bounded values against the field's
// option list. Returns the first offending value and false on a miss.
func outOfOptions(f *model.Field, coerced any) (string, bool) {
	allowed := make(map[string]struct{}, len(f.Options))
	for _, o := range f.Options {
		allowed[o.Value] = struct{}{}
	}
	switch v := coerced.(type) {
	case string:
		if _, ok := allowed[v]; !ok {
			return v, false
		}
	case []string:
		for _, e := range v {
			if _, ok := allowed[e]; !ok {
				return e, false
			}
		}
	}
	return "", true
}

// isEmptyValue reports whether a supplied value counts as absent: nil, the
// empty string, or an empty list.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
