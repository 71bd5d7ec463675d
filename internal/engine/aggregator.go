package engine

import (
	"sort"
	"strconv"

	"github.com/webstack-art/FormNest/internal/model"
)

// Aggregate computes a form's analytics report from its stored submissions:
// the total response count, a per-day time series (UTC calendar dates,
// ascending), and a value-frequency distribution for every option-bounded
// field. Like Validate it is pure and safe for concurrent use.
func Aggregate(schema *model.FormSchema, submissions []model.Submission) model.AnalyticsReport {
	report := model.AnalyticsReport{
		TotalResponses:  len(submissions),
		ResponsesByDate: responsesByDate(submissions),
		FieldAnalytics:  make(map[string]model.FieldAnalytics),
	}

	for i := range schema.Fields {
		f := &schema.Fields[i]
		if !IsOptionBounded(f.Type) {
			continue
		}

		fa := model.FieldAnalytics{
			FieldLabel:  f.Label,
			Type:        f.Type,
			ValueCounts: make(map[string]int),
		}
		for j := range submissions {
			a := submissions[j].AnswerFor(f.ID)
			if a == nil {
				continue
			}
			values := valueStrings(a.Value)
			if len(values) == 0 {
				// An empty selection does not count toward the field's
				// response total.
				continue
			}
			fa.TotalResponses++
			// Every element of a multi-value answer increments its own
			// bucket, so one submission can feed several buckets.
			for _, v := range values {
				fa.ValueCounts[v]++
			}
		}
		report.FieldAnalytics[f.ID] = fa
	}

	return report
}

func responsesByDate(submissions []model.Submission) []model.DateCount {
	byDate := make(map[string]int)
	for i := range submissions {
		date := submissions[i].SubmittedAt.UTC().Format("2006-01-02")
		byDate[date]++
	}

	out := make([]model.DateCount, 0, len(byDate))
	for date, count := range byDate {
		out = append(out, model.DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// valueStrings flattens an answer value into its countable string elements.
// Empty scalars and empty lists flatten to nothing.
func valueStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}
	case int:
		return []string{strconv.Itoa(t)}
	case []string:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if e != "" {
				out = append(out, e)
			}
		}
		return out
	case []any:
		var out []string
		for _, e := range t {
			out = append(out, valueStrings(e)...)
		}
		return out
	default:
		return nil
	}
}
