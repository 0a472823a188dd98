package domain

import "time"

// ArtifactKind names the kind of file a run produced.
type ArtifactKind string

const (
	QuarterlyFiling ArtifactKind = "quarterly_filing"
	AnnualFiling    ArtifactKind = "annual_filing"
	Transcript      ArtifactKind = "transcript"
	EarningsTable   ArtifactKind = "earnings_table"
)

// FileName returns the per-ticker file name used for the kind.
// Earnings tables live outside the ticker folder and are named after the ticker.
func (k ArtifactKind) FileName(ticker string) string {
	switch k {
	case QuarterlyFiling:
		return "latest_10Q.html"
	case AnnualFiling:
		return "latest_10K.html"
	case Transcript:
		return "latest_transcript.txt"
	case EarningsTable:
		return ticker + "_earnings.csv"
	default:
		return ""
	}
}

// KindForForm maps a filing form type to the artifact it produces.
func KindForForm(form FormType) ArtifactKind {
	if form == Annual {
		return AnnualFiling
	}
	return QuarterlyFiling
}

// Artifact records a file written to disk during a run.
type Artifact struct {
	RunID     string       `bson:"run_id" json:"run_id"`
	Ticker    string       `bson:"ticker" json:"ticker"`
	Kind      ArtifactKind `bson:"kind" json:"kind"`
	Path      string       `bson:"path" json:"path"`
	SourceURL string       `bson:"source_url,omitempty" json:"source_url,omitempty"`
	Title     string       `bson:"title,omitempty" json:"title,omitempty"`
	Bytes     int64        `bson:"bytes" json:"bytes"`
	SavedAt   time.Time    `bson:"saved_at" json:"saved_at"`
}
