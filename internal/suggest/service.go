package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fundmatch/fundmatch/internal/marketplace"
	"github.com/fundmatch/fundmatch/pkg/matching"
)

// Report is the archived output of one suggestion run.
type Report struct {
	ReportID    string                 `json:"reportId"`
	RunID       string                 `json:"runId,omitempty"`
	ApplicantID string                 `json:"applicantId"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Weights     matching.WeightVector  `json:"weights"`
	Results     []matching.MatchResult `json:"results"`
}

// Service runs suggestion passes over the marketplace.
type Service struct {
	market  *marketplace.Service
	store   *matching.Store
	engine  *matching.Engine
	storage StorageClient
}

// NewService creates a new suggestion Service.
func NewService(market *marketplace.Service, store *matching.Store, engine *matching.Engine, storage StorageClient) *Service {
	return &Service{
		market:  market,
		store:   store,
		engine:  engine,
		storage: storage,
	}
}

// SuggestForApplicant ranks all open opportunities for the given applicant
// using the current weight configuration, persists the run, and archives the
// full report. It returns the archived report.
func (s *Service) SuggestForApplicant(ctx context.Context, applicantID string) (*Report, error) {
	applicant, err := s.market.GetApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("load applicant: %w", err)
	}

	rows, err := s.market.ListOpenOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	opportunities := make([]matching.Opportunity, 0, len(rows))
	for i := range rows {
		opportunities = append(opportunities, rows[i].ToMatching())
	}

	profile := applicant.ToMatching()
	weights := s.store.Weights()

	results, err := s.engine.Rank(&profile, opportunities, weights)
	if err != nil {
		return nil, fmt.Errorf("rank opportunities: %w", err)
	}

	report := &Report{
		ReportID:    uuid.NewString(),
		ApplicantID: applicantID,
		GeneratedAt: time.Now().UTC(),
		Weights:     weights,
		Results:     results,
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := s.storage.PutReport(ctx, applicantID, report.ReportID, data); err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}

	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return nil, fmt.Errorf("marshal weights: %w", err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}

	var topScore float64
	if len(results) > 0 {
		topScore = results[0].TotalScore
	}

	runID, err := s.market.InsertMatchRun(ctx, &marketplace.MatchRunRow{
		ApplicantID:      applicantID,
		OpportunityCount: len(results),
		TopScore:         topScore,
		Weights:          weightsJSON,
		Results:          resultsJSON,
		StorageRef:       fmt.Sprintf("%s/reports/%s.json", applicantID, report.ReportID),
	})
	if err != nil {
		return nil, fmt.Errorf("persist match run: %w", err)
	}
	report.RunID = runID

	log.Printf("suggestion run %s completed: applicant=%s opportunities=%d top=%.2f",
		runID, applicantID, len(results), topScore)
	return report, nil
}

// SuggestAll reruns suggestions for every stored applicant. Used after a
// weight change to refresh persisted rankings. It returns the number of
// applicants processed and the first error encountered, if any.
func (s *Service) SuggestAll(ctx context.Context) (int, error) {
	ids, err := s.market.ListApplicantIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list applicants: %w", err)
	}

	processed := 0
	for _, id := range ids {
		if _, err := s.SuggestForApplicant(ctx, id); err != nil {
			return processed, fmt.Errorf("suggest for %s: %w", id, err)
		}
		processed++
	}
	return processed, nil
}

// LoadReport retrieves an archived report blob.
func (s *Service) LoadReport(ctx context.Context, applicantID, reportID string) (*Report, error) {
	data, err := s.storage.GetReport(ctx, applicantID, reportID)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
