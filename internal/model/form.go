package model

import "time"

// FormSettings configures form behavior at submission time.
type FormSettings struct {
	MaxSubmissions        int        `json:"maxSubmissions,omitempty" bson:"maxSubmissions,omitempty"` // 0 = unlimited
	ExpirationDate        *time.Time `json:"expirationDate,omitempty" bson:"expirationDate,omitempty"`
	RequireLogin          bool       `json:"requireLogin" bson:"requireLogin"`
	CollectEmail          bool       `json:"collectEmail" bson:"collectEmail"`
	EnableProgressBar     bool       `json:"enableProgressBar" bson:"enableProgressBar"`
	ShuffleFields         bool       `json:"shuffleFields" bson:"shuffleFields"`
	SubmitButtonText      string     `json:"submitButtonText" bson:"submitButtonText"`
	CustomThankYouMessage string     `json:"customThankYouMessage,omitempty" bson:"customThankYouMessage,omitempty"`
}

// Theme holds display colors and font. Stored verbatim for the client;
// the backend never interprets it.
type Theme struct {
	PrimaryColor    string `json:"primaryColor" bson:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor" bson:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor" bson:"backgroundColor"`
	Font            string `json:"font" bson:"font"`
}

// FormSchema is a persistent form definition created by a host. Field order
// is significant for display only; field ids are the addressing mechanism
// for validation and aggregation.
type FormSchema struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	OwnerID        string       `json:"ownerId" bson:"ownerId"`
	Title          string       `json:"title" bson:"title"`
	Description    string       `json:"description,omitempty" bson:"description,omitempty"`
	Fields         []Field      `json:"fields" bson:"fields"`
	Theme          Theme        `json:"theme" bson:"theme"`
	Settings       FormSettings `json:"settings" bson:"settings"`
	ResponsesCount int          `json:"responsesCount" bson:"responsesCount"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// FieldByID looks a field up by id. Returns nil if absent.
func (f *FormSchema) FieldByID(id string) *Field {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i]
		}
	}
	return nil
}
