package surface

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

func sampleRanking() *Ranking {
	return &Ranking{
		ApplicantID: "app-1",
		GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Weights:     matching.DefaultWeights(),
		Results: []matching.MatchResult{
			{
				OpportunityID: "opp-1",
				Title:         "Growth Equity Fund",
				TotalScore:    48.5,
				Breakdown: []matching.FactorScore{
					{Key: matching.FactorFundingType, Name: "Funding type", Raw: 1, Weight: 10, Weighted: 10},
					{Key: matching.FactorIntent, Name: "Intent alignment", Raw: 0, Weight: 5, Weighted: 0},
				},
			},
			{OpportunityID: "opp-2", TotalScore: 12},
		},
	}
}

func TestTerminalRenderer(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := &TerminalRenderer{}
	if err := r.Render(&buf, sampleRanking()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"2 opportunities ranked", "Growth Equity Fund", "48.50", "Funding type", "opp-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Zero-raw, zero-weighted factors are omitted from the findings.
	if strings.Contains(out, "Intent alignment") {
		t.Errorf("output should omit zero-contribution factor:\n%s", out)
	}
}

func TestTerminalRendererMaxResults(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := &TerminalRenderer{MaxResults: 1}
	if err := r.Render(&buf, sampleRanking()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "opp-2") {
		t.Errorf("output should truncate to 1 result:\n%s", out)
	}
	if !strings.Contains(out, "and 1 more") {
		t.Errorf("output missing truncation note:\n%s", out)
	}
}

func TestTerminalRendererEmpty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := &TerminalRenderer{}
	if err := r.Render(&buf, &Ranking{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No opportunities") {
		t.Errorf("empty ranking output: %q", buf.String())
	}
}

func TestJSONRendererRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{}
	if err := r.Render(&buf, sampleRanking()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded Ranking
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ApplicantID != "app-1" {
		t.Errorf("applicant_id = %q, want app-1", decoded.ApplicantID)
	}
	if len(decoded.Results) != 2 {
		t.Errorf("results = %d, want 2", len(decoded.Results))
	}
}
