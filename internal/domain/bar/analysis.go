package bar

// Analysis payload types. The external service extracts these from a
// PDF menu; every field is optional in practice, so the zero value of
// each struct is a legal (empty) payload and decoding never fails on
// missing fields.

type AnalysisDeal struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	Deal        string `json:"deal"`
}

type AnalysisSchedule struct {
	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

// AnalysisSession is one happy-hour candidate found in the PDF.
type AnalysisSession struct {
	Name         string           `json:"name"`
	Schedule     AnalysisSchedule `json:"schedule"`
	Deals        []AnalysisDeal   `json:"deals"`
	DealsSummary string           `json:"deals_summary"`
}

type AnalysisResult struct {
	HappyHours []AnalysisSession `json:"happy_hours"`
}
