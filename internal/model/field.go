package model

// FieldType identifies the kind of a form field. The set is closed: adding a
// kind means adding a row to the engine's type table, not a new branch.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
	FieldDropdown FieldType = "dropdown"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldFile     FieldType = "file"
	FieldRating   FieldType = "rating"
)

// Option is one selectable choice of a dropdown, radio or checkbox field.
// Value must be unique within a field's option list.
type Option struct {
	Value string `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// RuleAction determines whether a matching conditional rule shows or hides
// its field.
type RuleAction string

const (
	ActionShow RuleAction = "show"
	ActionHide RuleAction = "hide"
)

// ConditionalRule makes a field's visibility depend on another field's
// current value. It references the other field by id; self-references and
// reference cycles are rejected at authoring time by the form service.
type ConditionalRule struct {
	ConditionFieldID string     `json:"conditionFieldId" bson:"conditionFieldId"`
	ConditionValue   string     `json:"conditionValue" bson:"conditionValue"`
	Action           RuleAction `json:"action" bson:"action"`
}

// Field is one question in a form.
type Field struct {
	ID               string           `json:"id" bson:"id"`
	Type             FieldType        `json:"type" bson:"type"`
	Label            string           `json:"label" bson:"label"`
	Placeholder      string           `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Description      string           `json:"description,omitempty" bson:"description,omitempty"`
	Required         bool             `json:"required" bson:"required"`
	Options          []Option         `json:"options,omitempty" bson:"options,omitempty"`
	DefaultValue     string           `json:"defaultValue,omitempty" bson:"defaultValue,omitempty"`
	ConditionalLogic *ConditionalRule `json:"conditionalLogic,omitempty" bson:"conditionalLogic,omitempty"`
}
