package engine

import (
	"strconv"

	"github.com/webstack-art/FormNest/internal/model"
)

// ActiveFields returns the set of field ids that are currently visible (and
// therefore enforceable) under the given answer set. A field without
// conditional logic is always active. A field with a rule is active iff the
// rule matches for action=show, or does not match for action=hide.
//
// Evaluation is a single pass over the field list and exactly one hop deep:
// whether the referenced field is itself hidden does not matter. That keeps
// evaluation cycle-proof; cycle rejection happens at authoring time in the
// form service.
func ActiveFields(schema *model.FormSchema, answers map[string]any) map[string]struct{} {
	active := make(map[string]struct{}, len(schema.Fields))
	for i := range schema.Fields {
		f := &schema.Fields[i]
		rule := f.ConditionalLogic
		if rule == nil {
			active[f.ID] = struct{}{}
			continue
		}
		matches := answerMatches(answers[rule.ConditionFieldID], rule.ConditionValue)
		switch rule.Action {
		case model.ActionShow:
			if matches {
				active[f.ID] = struct{}{}
			}
		case model.ActionHide:
			if !matches {
				active[f.ID] = struct{}{}
			}
		default:
			// Unknown action: treat the rule as inert rather than
			// silently hiding the field.
			active[f.ID] = struct{}{}
		}
	}
	return active
}

// answerMatches compares an answer value against a rule's condition value.
// Scalars compare by string representation; a multi-value answer matches if
// any element does. A missing answer (nil) never matches.
func answerMatches(value any, condition string) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v == condition
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) == condition
	case int:
		return strconv.Itoa(v) == condition
	case bool:
		return strconv.FormatBool(v) == condition
	case []string:
		for _, e := range v {
			if e == condition {
				return true
			}
		}
		return false
	case []any:
		for _, e := range v {
			if answerMatches(e, condition) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
