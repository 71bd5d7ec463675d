package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/webstack-art/FormNest/internal/model"
)

func validForm() *model.FormSchema {
	return &model.FormSchema{
		Title: "Feedback",
		Fields: []model.Field{
			{ID: "q1", Type: model.FieldText, Label: "Name"},
			{ID: "q2", Type: model.FieldDropdown, Label: "Flavor",
				Options: []model.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}},
		},
	}
}

func TestValidateSchemaOK(t *testing.T) {
	if err := ValidateSchema(validForm()); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
}

func TestValidateSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.FormSchema)
		wantMsg string
	}{
		{
			name:    "empty title",
			mutate:  func(f *model.FormSchema) { f.Title = "" },
			wantMsg: "title",
		},
		{
			name:    "no fields",
			mutate:  func(f *model.FormSchema) { f.Fields = nil },
			wantMsg: "at least one field",
		},
		{
			name: "duplicate field id",
			mutate: func(f *model.FormSchema) {
				f.Fields = append(f.Fields, model.Field{ID: "q1", Type: model.FieldText, Label: "Again"})
			},
			wantMsg: `duplicate field id "q1"`,
		},
		{
			name:    "unknown field type",
			mutate:  func(f *model.FormSchema) { f.Fields[0].Type = "slider" },
			wantMsg: "unknown type",
		},
		{
			name:    "missing label",
			mutate:  func(f *model.FormSchema) { f.Fields[0].Label = "" },
			wantMsg: "no label",
		},
		{
			name:    "option-bounded field without options",
			mutate:  func(f *model.FormSchema) { f.Fields[1].Options = nil },
			wantMsg: "non-empty option list",
		},
		{
			name: "duplicate option value",
			mutate: func(f *model.FormSchema) {
				f.Fields[1].Options = append(f.Fields[1].Options, model.Option{Value: "a", Label: "A again"})
			},
			wantMsg: `duplicate option value "a"`,
		},
		{
			name: "options on a free-form field",
			mutate: func(f *model.FormSchema) {
				f.Fields[0].Options = []model.Option{{Value: "x", Label: "X"}}
			},
			wantMsg: "must not carry options",
		},
		{
			name: "rule references itself",
			mutate: func(f *model.FormSchema) {
				f.Fields[0].ConditionalLogic = &model.ConditionalRule{
					ConditionFieldID: "q1", ConditionValue: "x", Action: model.ActionShow}
			},
			wantMsg: "references itself",
		},
		{
			name: "rule references unknown field",
			mutate: func(f *model.FormSchema) {
				f.Fields[0].ConditionalLogic = &model.ConditionalRule{
					ConditionFieldID: "ghost", ConditionValue: "x", Action: model.ActionShow}
			},
			wantMsg: `unknown field "ghost"`,
		},
		{
			name: "unknown rule action",
			mutate: func(f *model.FormSchema) {
				f.Fields[0].ConditionalLogic = &model.ConditionalRule{
					ConditionFieldID: "q2", ConditionValue: "a", Action: "toggle"}
			},
			wantMsg: "unknown rule action",
		},
		{
			name: "pairwise rule cycle",
			mutate: func(f *model.FormSchema) {
				f.Fields[0].ConditionalLogic = &model.ConditionalRule{
					ConditionFieldID: "q2", ConditionValue: "a", Action: model.ActionShow}
				f.Fields[1].ConditionalLogic = &model.ConditionalRule{
					ConditionFieldID: "q1", ConditionValue: "y", Action: model.ActionShow}
			},
			wantMsg: "cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)
			err := ValidateSchema(form)
			if err == nil {
				t.Fatal("expected schema rejection")
			}
			if !errors.Is(err, ErrInvalidSchema) {
				t.Fatalf("error = %v, want ErrInvalidSchema", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateSchemaLongerCycle(t *testing.T) {
	form := &model.FormSchema{
		Title: "Cyclic",
		Fields: []model.Field{
			{ID: "a", Type: model.FieldText, Label: "A",
				ConditionalLogic: &model.ConditionalRule{ConditionFieldID: "b", ConditionValue: "x", Action: model.ActionShow}},
			{ID: "b", Type: model.FieldText, Label: "B",
				ConditionalLogic: &model.ConditionalRule{ConditionFieldID: "c", ConditionValue: "x", Action: model.ActionHide}},
			{ID: "c", Type: model.FieldText, Label: "C",
				ConditionalLogic: &model.ConditionalRule{ConditionFieldID: "a", ConditionValue: "x", Action: model.ActionShow}},
		},
	}

	err := ValidateSchema(form)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("three-field cycle not detected: %v", err)
	}
}

func TestValidateSchemaAccumulatesErrors(t *testing.T) {
	form := validForm()
	form.Title = ""
	form.Fields[0].Label = ""
	form.Fields[1].Options = nil

	err := ValidateSchema(form)
	if err == nil {
		t.Fatal("expected schema rejection")
	}
	for _, want := range []string{"title", "no label", "option list"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("accumulated error %q is missing %q", err.Error(), want)
		}
	}
}

// A chain that is not a cycle must pass.
func TestValidateSchemaChainIsNotACycle(t *testing.T) {
	form := &model.FormSchema{
		Title: "Chain",
		Fields: []model.Field{
			{ID: "a", Type: model.FieldText, Label: "A"},
			{ID: "b", Type: model.FieldText, Label: "B",
				ConditionalLogic: &model.ConditionalRule{ConditionFieldID: "a", ConditionValue: "x", Action: model.ActionShow}},
			{ID: "c", Type: model.FieldText, Label: "C",
				ConditionalLogic: &model.ConditionalRule{ConditionFieldID: "b", ConditionValue: "y", Action: model.ActionShow}},
		},
	}
	if err := ValidateSchema(form); err != nil {
		t.Fatalf("linear chain rejected: %v", err)
	}
}
