package model

import "time"

// Answer is one field's value within a submission. Value is a scalar
// (string or float64), a []string for multi-value fields, or nil.
type Answer struct {
	FieldID string `json:"fieldId" bson:"fieldId"`
	Value   any    `json:"value" bson:"value"`
}

// Submission is an accepted, immutable response to a form. It is created
// only from a validator Accepted result and never mutated afterwards.
type Submission struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	FormID       string    `json:"formId" bson:"formId"`
	Answers      []Answer  `json:"answers" bson:"answers"`
	RespondentID string    `json:"respondentId,omitempty" bson:"respondentId,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt" bson:"submittedAt"`
}

// AnswerFor returns the answer for a field id, or nil if the submission
// carries none.
func (s *Submission) AnswerFor(fieldID string) *Answer {
	for i := range s.Answers {
		if s.Answers[i].FieldID == fieldID {
			return &s.Answers[i]
		}
	}
	return nil
}
