package marketplace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

func TestNewService(t *testing.T) {
	// NewService should not panic with nil db (it just stores the reference).
	svc := NewService(nil)
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
}

func TestOpportunityRowToMatching(t *testing.T) {
	published := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	row := OpportunityRow{
		ID:              "opp-1",
		FunderID:        "funder-1",
		Title:           "Growth Equity Fund",
		AcceptedTypes:   []string{"equity", "convertible"},
		AmountMin:       100000,
		AmountMax:       1000000,
		Stages:          []string{"growth", "expansion"},
		Industries:      []string{"technology"},
		Geographies:     []string{"ZA", "KE"},
		IntentTags:      []string{"scale"},
		PublishedAt:     published,
		CompetitorCount: 2,
		Status:          StatusOpen,
	}

	opp := row.ToMatching()
	if opp.ID != "opp-1" {
		t.Errorf("ID = %q, want %q", opp.ID, "opp-1")
	}
	if opp.Title != "Growth Equity Fund" {
		t.Errorf("Title = %q, want %q", opp.Title, "Growth Equity Fund")
	}
	if len(opp.AcceptedTypes) != 2 || opp.AcceptedTypes[0] != "equity" {
		t.Errorf("AcceptedTypes = %v", opp.AcceptedTypes)
	}
	if opp.AmountMin != 100000 || opp.AmountMax != 1000000 {
		t.Errorf("amount range = [%v, %v]", opp.AmountMin, opp.AmountMax)
	}
	if !opp.PublishedAt.Equal(published) {
		t.Errorf("PublishedAt = %v, want %v", opp.PublishedAt, published)
	}
	if opp.CompetitorCount != 2 {
		t.Errorf("CompetitorCount = %d, want 2", opp.CompetitorCount)
	}
	if err := opp.Validate(); err != nil {
		t.Errorf("converted opportunity should be valid, got %v", err)
	}
}

func TestApplicantRowToMatching(t *testing.T) {
	row := ApplicantRow{
		ID:            "app-1",
		DisplayName:   "Acme Ventures",
		DesiredTypes:  []string{"equity"},
		DesiredAmount: 500000,
		Stage:         matching.StageGrowth,
		Industry:      "technology",
		Geography:     "ZA",
		Intent:        "scale",
	}

	profile := row.ToMatching()
	if profile.ApplicantID != "app-1" {
		t.Errorf("ApplicantID = %q, want %q", profile.ApplicantID, "app-1")
	}
	if profile.DesiredAmount != 500000 {
		t.Errorf("DesiredAmount = %v, want 500000", profile.DesiredAmount)
	}
	if profile.Stage != matching.StageGrowth {
		t.Errorf("Stage = %q, want %q", profile.Stage, matching.StageGrowth)
	}
	if profile.Intent != "scale" {
		t.Errorf("Intent = %q, want %q", profile.Intent, "scale")
	}
}

func TestMatchRunRowPayloadsRoundTrip(t *testing.T) {
	weights := matching.DefaultWeights()
	rawWeights, err := json.Marshal(weights)
	if err != nil {
		t.Fatalf("marshal weights: %v", err)
	}
	results := []matching.MatchResult{
		{OpportunityID: "opp-1", Title: "Fund A", TotalScore: 48.5},
	}
	rawResults, err := json.Marshal(results)
	if err != nil {
		t.Fatalf("marshal results: %v", err)
	}

	run := MatchRunRow{
		ID:               "run-1",
		ApplicantID:      "app-1",
		OpportunityCount: 1,
		TopScore:         48.5,
		Weights:          rawWeights,
		Results:          rawResults,
		StorageRef:       "local://reports/run-1.json",
	}

	var gotWeights matching.WeightVector
	if err := json.Unmarshal(run.Weights, &gotWeights); err != nil {
		t.Fatalf("unmarshal weights: %v", err)
	}
	if gotWeights[matching.FactorFundingType] != 10 {
		t.Errorf("fundingType weight = %v, want 10", gotWeights[matching.FactorFundingType])
	}

	var gotResults []matching.MatchResult
	if err := json.Unmarshal(run.Results, &gotResults); err != nil {
		t.Fatalf("unmarshal results: %v", err)
	}
	if len(gotResults) != 1 || gotResults[0].TotalScore != 48.5 {
		t.Errorf("results = %+v", gotResults)
	}
}

func TestServiceMethodSet(t *testing.T) {
	// The Service methods all require a real Postgres database; verify the
	// method set compiles with the expected signatures.
	svc := &Service{}
	if svc.db != nil {
		t.Error("zero-value Service should have nil db")
	}

	_ = svc.EnsureFunder
	_ = svc.CreateOpportunity
	_ = svc.GetOpportunity
	_ = svc.ListOpenOpportunities
	_ = svc.CloseOpportunity
	_ = svc.RecordApplication
	_ = svc.UpsertApplicant
	_ = svc.GetApplicant
	_ = svc.ListApplicantIDs
	_ = svc.LoadWeights
	_ = svc.SaveWeights
	_ = svc.InsertMatchRun
	_ = svc.ListMatchRunsByApplicant
	_ = svc.GetMatchRun
}
