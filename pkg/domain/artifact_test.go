package domain

import "testing"

func TestArtifactKind_FileName(t *testing.T) {
	tests := []struct {
		kind ArtifactKind
		want string
	}{
		{QuarterlyFiling, "latest_10Q.html"},
		{AnnualFiling, "latest_10K.html"},
		{Transcript, "latest_transcript.txt"},
		{EarningsTable, "CRWD_earnings.csv"},
		{ArtifactKind("unknown"), ""},
	}

	for _, tt := range tests {
		if got := tt.kind.FileName("CRWD"); got != tt.want {
			t.Errorf("%s.FileName() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindForForm(t *testing.T) {
	if got := KindForForm(Quarterly); got != QuarterlyFiling {
		t.Errorf("KindForForm(10-Q) = %s, want %s", got, QuarterlyFiling)
	}
	if got := KindForForm(Annual); got != AnnualFiling {
		t.Errorf("KindForForm(10-K) = %s, want %s", got, AnnualFiling)
	}
}
