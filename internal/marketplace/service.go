// Package marketplace manages the funding-marketplace state: funders, their
// published opportunities, applicant profiles, the persisted weight
// configuration, and match-run history.
package marketplace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

// Opportunity lifecycle states.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Service provides marketplace persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new marketplace Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Funder represents one funding provider.
type Funder struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// OpportunityRow is an opportunity record as stored.
type OpportunityRow struct {
	ID              string
	FunderID        string
	Title           string
	AcceptedTypes   []string
	AmountMin       float64
	AmountMax       float64
	Stages          []string
	Industries      []string
	Geographies     []string
	IntentTags      []string
	PublishedAt     time.Time
	CompetitorCount int
	Status          string
	CreatedAt       time.Time
}

// ToMatching converts the row into the engine's input shape.
func (r *OpportunityRow) ToMatching() matching.Opportunity {
	return matching.Opportunity{
		ID:              r.ID,
		Title:           r.Title,
		AcceptedTypes:   r.AcceptedTypes,
		AmountMin:       r.AmountMin,
		AmountMax:       r.AmountMax,
		Stages:          r.Stages,
		Industries:      r.Industries,
		Geographies:     r.Geographies,
		IntentTags:      r.IntentTags,
		PublishedAt:     r.PublishedAt,
		CompetitorCount: r.CompetitorCount,
	}
}

// ApplicantRow is an applicant profile record as stored.
type ApplicantRow struct {
	ID            string
	DisplayName   string
	DesiredTypes  []string
	DesiredAmount float64
	Stage         string
	Industry      string
	Geography     string
	Intent        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToMatching converts the row into the engine's input shape.
func (r *ApplicantRow) ToMatching() matching.ApplicantProfile {
	return matching.ApplicantProfile{
		ApplicantID:   r.ID,
		DesiredTypes:  r.DesiredTypes,
		DesiredAmount: r.DesiredAmount,
		Stage:         r.Stage,
		Industry:      r.Industry,
		Geography:     r.Geography,
		Intent:        r.Intent,
	}
}

// MatchRunRow is one persisted ranking pass.
type MatchRunRow struct {
	ID               string
	ApplicantID      string
	OpportunityCount int
	TopScore         float64
	Weights          json.RawMessage
	Results          json.RawMessage
	StorageRef       string
	CreatedAt        time.Time
}

// EnsureFunder gets or creates a funder by name.
func (s *Service) EnsureFunder(ctx context.Context, name string) (*Funder, error) {
	f, err := s.getFunderByName(ctx, name)
	if err == nil {
		return f, nil
	}

	f = &Funder{}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO funders (name) VALUES ($1)
		 RETURNING id, name, created_at`,
		name,
	).Scan(&f.ID, &f.Name, &f.CreatedAt)
	if err != nil {
		// Could be a race with another creator; try reading again.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return s.getFunderByName(ctx, name)
		}
		return nil, fmt.Errorf("create funder %s: %w", name, err)
	}
	return f, nil
}

func (s *Service) getFunderByName(ctx context.Context, name string) (*Funder, error) {
	f := &Funder{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM funders WHERE name = $1`,
		name,
	).Scan(&f.ID, &f.Name, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get funder %s: %w", name, err)
	}
	return f, nil
}

const opportunityColumns = `id, funder_id, title, accepted_types, amount_min, amount_max,
	stages, industries, geographies, intent_tags, published_at, competitor_count, status, created_at`

func scanOpportunity(row interface{ Scan(...any) error }) (*OpportunityRow, error) {
	o := &OpportunityRow{}
	err := row.Scan(
		&o.ID, &o.FunderID, &o.Title,
		pq.Array(&o.AcceptedTypes), &o.AmountMin, &o.AmountMax,
		pq.Array(&o.Stages), pq.Array(&o.Industries), pq.Array(&o.Geographies), pq.Array(&o.IntentTags),
		&o.PublishedAt, &o.CompetitorCount, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CreateOpportunity publishes a new opportunity for a funder.
func (s *Service) CreateOpportunity(ctx context.Context, funderID string, o *OpportunityRow) (*OpportunityRow, error) {
	publishedAt := o.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO opportunities
		   (funder_id, title, accepted_types, amount_min, amount_max,
		    stages, industries, geographies, intent_tags, published_at, competitor_count, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+opportunityColumns,
		funderID, o.Title,
		pq.Array(o.AcceptedTypes), o.AmountMin, o.AmountMax,
		pq.Array(o.Stages), pq.Array(o.Industries), pq.Array(o.Geographies), pq.Array(o.IntentTags),
		publishedAt, o.CompetitorCount, StatusOpen,
	)
	created, err := scanOpportunity(row)
	if err != nil {
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	return created, nil
}

// GetOpportunity retrieves one opportunity by ID.
func (s *Service) GetOpportunity(ctx context.Context, id string) (*OpportunityRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id)
	o, err := scanOpportunity(row)
	if err != nil {
		return nil, fmt.Errorf("get opportunity %s: %w", id, err)
	}
	return o, nil
}

// ListOpenOpportunities returns all open opportunities, newest first.
func (s *Service) ListOpenOpportunities(ctx context.Context) ([]OpportunityRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities
		 WHERE status = $1 ORDER BY published_at DESC, id`,
		StatusOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("list open opportunities: %w", err)
	}
	defer rows.Close()

	var out []OpportunityRow
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// CloseOpportunity marks an opportunity as no longer accepting applicants.
func (s *Service) CloseOpportunity(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE opportunities SET status = $1 WHERE id = $2`, StatusClosed, id)
	if err != nil {
		return fmt.Errorf("close opportunity %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("close opportunity %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// RecordApplication bumps an opportunity's competitor count. Called by the
// application workflow when a new application lands.
func (s *Service) RecordApplication(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE opportunities SET competitor_count = competitor_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("record application for %s: %w", id, err)
	}
	return nil
}

// UpsertApplicant creates or updates an applicant profile.
func (s *Service) UpsertApplicant(ctx context.Context, a *ApplicantRow) (*ApplicantRow, error) {
	out := &ApplicantRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO applicant_profiles
		   (id, display_name, desired_types, desired_amount, stage, industry, geography, intent)
		 VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		   SET display_name = EXCLUDED.display_name,
		       desired_types = EXCLUDED.desired_types,
		       desired_amount = EXCLUDED.desired_amount,
		       stage = EXCLUDED.stage,
		       industry = EXCLUDED.industry,
		       geography = EXCLUDED.geography,
		       intent = EXCLUDED.intent,
		       updated_at = now()
		 RETURNING id, display_name, desired_types, desired_amount, stage, industry, geography, intent, created_at, updated_at`,
		a.ID, a.DisplayName, pq.Array(a.DesiredTypes), a.DesiredAmount,
		a.Stage, a.Industry, a.Geography, a.Intent,
	).Scan(
		&out.ID, &out.DisplayName, pq.Array(&out.DesiredTypes), &out.DesiredAmount,
		&out.Stage, &out.Industry, &out.Geography, &out.Intent, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert applicant: %w", err)
	}
	return out, nil
}

// GetApplicant retrieves an applicant profile by ID.
func (s *Service) GetApplicant(ctx context.Context, id string) (*ApplicantRow, error) {
	a := &ApplicantRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, desired_types, desired_amount, stage, industry, geography, intent, created_at, updated_at
		 FROM applicant_profiles WHERE id = $1`,
		id,
	).Scan(
		&a.ID, &a.DisplayName, pq.Array(&a.DesiredTypes), &a.DesiredAmount,
		&a.Stage, &a.Industry, &a.Geography, &a.Intent, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get applicant %s: %w", id, err)
	}
	return a, nil
}

// ListApplicantIDs returns the IDs of all stored applicant profiles.
func (s *Service) ListApplicantIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM applicant_profiles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan applicant id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LoadWeights returns the persisted weight configuration, or nil if none
// has been saved yet.
func (s *Service) LoadWeights(ctx context.Context) (matching.WeightVector, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT weights FROM weight_config WHERE id = 1`,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}

	var w matching.WeightVector
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	return w, nil
}

// SaveWeights persists the complete current weight vector.
func (s *Service) SaveWeights(ctx context.Context, w matching.WeightVector) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO weight_config (id, weights) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET weights = EXCLUDED.weights, updated_at = now()`,
		raw,
	)
	if err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	return nil
}

// InsertMatchRun records one completed ranking pass and returns its ID.
func (s *Service) InsertMatchRun(ctx context.Context, run *MatchRunRow) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO match_runs (applicant_id, opportunity_count, top_score, weights, results, storage_ref)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		run.ApplicantID, run.OpportunityCount, run.TopScore,
		run.Weights, run.Results, run.StorageRef,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert match run: %w", err)
	}
	return id, nil
}

// ListMatchRunsByApplicant returns an applicant's runs, newest first.
func (s *Service) ListMatchRunsByApplicant(ctx context.Context, applicantID string) ([]MatchRunRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, applicant_id, opportunity_count, top_score, weights, results, storage_ref, created_at
		 FROM match_runs WHERE applicant_id = $1 ORDER BY created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list match runs: %w", err)
	}
	defer rows.Close()

	var runs []MatchRunRow
	for rows.Next() {
		var r MatchRunRow
		if err := rows.Scan(
			&r.ID, &r.ApplicantID, &r.OpportunityCount, &r.TopScore,
			&r.Weights, &r.Results, &r.StorageRef, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetMatchRun returns a single match run by ID.
func (s *Service) GetMatchRun(ctx context.Context, id string) (*MatchRunRow, error) {
	r := &MatchRunRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, applicant_id, opportunity_count, top_score, weights, results, storage_ref, created_at
		 FROM match_runs WHERE id = $1`,
		id,
	).Scan(
		&r.ID, &r.ApplicantID, &r.OpportunityCount, &r.TopScore,
		&r.Weights, &r.Results, &r.StorageRef, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get match run %s: %w", id, err)
	}
	return r, nil
}
