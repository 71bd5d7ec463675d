package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/webstack-art/FormNest/internal/model"
)

// NotAnswered marks a field a submission carries no value for. It is
// deliberately distinct from the empty string, which is a real (empty)
// answer.
const NotAnswered = "(not answered)"

// ExportHeader returns the column headers for a tabular export: submission
// metadata first, then one column per field in schema order.
func ExportHeader(schema *model.FormSchema) []string {
	header := make([]string, 0, len(schema.Fields)+2)
	header = append(header, "submissionId", "submittedAt")
	for i := range schema.Fields {
		header = append(header, schema.Fields[i].Label)
	}
	return header
}

// ExportRows projects submissions onto rows matching ExportHeader. Field
// values appear in schema order; multi-value answers are joined with "; ".
// Pure: the CSV plumbing around it lives in the export service.
func ExportRows(schema *model.FormSchema, submissions []model.Submission) [][]string {
	rows := make([][]string, 0, len(submissions))
	for i := range submissions {
		sub := &submissions[i]
		row := make([]string, 0, len(schema.Fields)+2)
		row = append(row, sub.ID, sub.SubmittedAt.UTC().Format(time.RFC3339))
		for j := range schema.Fields {
			row = append(row, cellValue(sub.AnswerFor(schema.Fields[j].ID)))
		}
		rows = append(rows, row)
	}
	return rows
}

func cellValue(a *model.Answer) string {
	if a == nil || a.Value == nil {
		return NotAnswered
	}
	switch v := a.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, "; ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, cellValue(&model.Answer{Value: e}))
		}
		return strings.Join(parts, "; ")
	default:
		return NotAnswered
	}
}
