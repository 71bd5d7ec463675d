package engine

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/webstack-art/FormNest/internal/model"
)

func showRule(fieldID, value string) *model.ConditionalRule {
	return &model.ConditionalRule{ConditionFieldID: fieldID, ConditionValue: value, Action: model.ActionShow}
}

func hideRule(fieldID, value string) *model.ConditionalRule {
	return &model.ConditionalRule{ConditionFieldID: fieldID, ConditionValue: value, Action: model.ActionHide}
}

func TestActiveFields(t *testing.T) {
	schema := &model.FormSchema{
		Fields: []model.Field{
			{ID: "q1", Type: model.FieldRadio, Label: "Newsletter?", Options: []model.Option{{Value: "yes", Label: "Yes"}, {Value: "no", Label: "No"}}},
			{ID: "q2", Type: model.FieldEmail, Label: "Email", ConditionalLogic: showRule("q1", "yes")},
			{ID: "q3", Type: model.FieldText, Label: "Why not?", ConditionalLogic: hideRule("q1", "yes")},
			{ID: "q4", Type: model.FieldText, Label: "Comments"},
		},
	}

	tests := []struct {
		name    string
		answers map[string]any
		want    []string
	}{
		{
			name:    "empty answers: show rules off, hide rules off",
			answers: map[string]any{},
			want:    []string{"q1", "q3", "q4"},
		},
		{
			name:    "show rule matched",
			answers: map[string]any{"q1": "yes"},
			want:    []string{"q1", "q2", "q4"},
		},
		{
			name:    "show rule not matched",
			answers: map[string]any{"q1": "no"},
			want:    []string{"q1", "q3", "q4"},
		},
		{
			name:    "multi-value answer matches by membership",
			answers: map[string]any{"q1": []string{"maybe", "yes"}},
			want:    []string{"q1", "q2", "q4"},
		},
		{
			name:    "numeric answer compares by string form",
			answers: map[string]any{"q1": 1.0},
			want:    []string{"q1", "q3", "q4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := ActiveFields(schema, tt.answers)
			if len(active) != len(tt.want) {
				t.Fatalf("ActiveFields = %v, want %v", keys(active), tt.want)
			}
			for _, id := range tt.want {
				if _, ok := active[id]; !ok {
					t.Errorf("field %q should be active, got %v", id, keys(active))
				}
			}
		})
	}
}

// Evaluation is exactly one hop deep: a rule referencing a field that is
// itself hidden still sees that field's answer value.
func TestActiveFieldsNoCascade(t *testing.T) {
	schema := &model.FormSchema{
		Fields: []model.Field{
			{ID: "a", Type: model.FieldText, Label: "A"},
			{ID: "b", Type: model.FieldText, Label: "B", ConditionalLogic: showRule("a", "on")},
			{ID: "c", Type: model.FieldText, Label: "C", ConditionalLogic: showRule("b", "go")},
		},
	}

	// "b" is hidden (a != on) but carries an answer; "c" still activates
	// off that answer.
	active := ActiveFields(schema, map[string]any{"a": "off", "b": "go"})
	if _, ok := active["b"]; ok {
		t.Error("b should be hidden")
	}
	if _, ok := active["c"]; !ok {
		t.Error("c should be active: one-hop evaluation ignores b's own visibility")
	}
}

// A pairwise rule cycle must evaluate to a stable result instead of
// recursing; cycle rejection is the form service's job, not the evaluator's.
func TestActiveFieldsCycleIsStable(t *testing.T) {
	schema := &model.FormSchema{
		Fields: []model.Field{
			{ID: "a", Type: model.FieldText, Label: "A", ConditionalLogic: showRule("b", "x")},
			{ID: "b", Type: model.FieldText, Label: "B", ConditionalLogic: showRule("a", "y")},
		},
	}

	first := ActiveFields(schema, map[string]any{"a": "y", "b": "z"})
	second := ActiveFields(schema, map[string]any{"a": "y", "b": "z"})
	if len(first) != len(second) {
		t.Fatalf("cycle evaluation is not deterministic: %v vs %v", keys(first), keys(second))
	}
	if _, ok := first["b"]; !ok {
		t.Error("b should be active (a == y)")
	}
	if _, ok := first["a"]; ok {
		t.Error("a should be hidden (b != x)")
	}
}

// A field without conditional logic is active for every answer set,
// including the empty one.
func TestUnconditionalFieldsAlwaysActive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("unconditional fields are always active", prop.ForAll(
		func(answerValues map[string]string) bool {
			schema := &model.FormSchema{
				Fields: []model.Field{
					{ID: "free", Type: model.FieldText, Label: "Free"},
					{ID: "gated", Type: model.FieldText, Label: "Gated", ConditionalLogic: showRule("free", "open")},
				},
			}
			answers := make(map[string]any, len(answerValues))
			for k, v := range answerValues {
				answers[k] = v
			}
			_, ok := ActiveFields(schema, answers)["free"]
			return ok
		},
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
