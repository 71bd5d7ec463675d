package model

// DateCount is the number of submissions received on one UTC calendar date.
type DateCount struct {
	Date  string `json:"date" bson:"date"` // YYYY-MM-DD
	Count int    `json:"count" bson:"count"`
}

// FieldAnalytics is the value-frequency distribution of one option-bounded
// field. TotalResponses counts submissions that supplied any value for the
// field; for multi-value fields the bucket sum can exceed it.
type FieldAnalytics struct {
	FieldLabel     string         `json:"fieldLabel" bson:"fieldLabel"`
	Type           FieldType      `json:"type" bson:"type"`
	TotalResponses int            `json:"totalResponses" bson:"totalResponses"`
	ValueCounts    map[string]int `json:"values" bson:"values"`
}

// AnalyticsReport aggregates a form's submissions: a response-count time
// series plus per-field distributions for option-bounded fields.
type AnalyticsReport struct {
	TotalResponses  int                       `json:"totalResponses" bson:"totalResponses"`
	ResponsesByDate []DateCount               `json:"responsesByDate" bson:"responsesByDate"`
	FieldAnalytics  map[string]FieldAnalytics `json:"fieldAnalytics" bson:"fieldAnalytics"`
}
