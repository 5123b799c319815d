// Package matching implements the fundmatch opportunity matching engine.
// It scores funding opportunities against an applicant profile across a
// fixed set of weighted factors and produces an explainable, deterministic
// ranking.
package matching

import (
	"fmt"
	"time"
)

// Business stages recognized by the marketplace.
const (
	StageIdea      = "idea"
	StageStartup   = "startup"
	StageGrowth    = "growth"
	StageExpansion = "expansion"
	StageMature    = "mature"
)

// GeographyGlobal marks an opportunity as open to applicants anywhere.
const GeographyGlobal = "global"

// ApplicantProfile holds the matching-relevant attributes of one funding
// seeker. Immutable for the duration of a ranking pass.
type ApplicantProfile struct {
	ApplicantID   string   `json:"applicant_id,omitempty"`
	DesiredTypes  []string `json:"desired_types"`  // e.g. "equity", "debt", "grant"
	DesiredAmount float64  `json:"desired_amount"` // in the marketplace currency
	Stage         string   `json:"stage"`
	Industry      string   `json:"industry"`
	Geography     string   `json:"geography"`        // ISO country code or region key
	Intent        string   `json:"intent,omitempty"` // optional intent token, "" = none
}

// Opportunity holds the matching-relevant attributes of one funding offer.
// Immutable for the duration of a ranking pass.
type Opportunity struct {
	ID              string    `json:"id"`
	Title           string    `json:"title,omitempty"`
	AcceptedTypes   []string  `json:"accepted_types"`
	AmountMin       float64   `json:"amount_min"`
	AmountMax       float64   `json:"amount_max"`
	Stages          []string  `json:"stages"`
	Industries      []string  `json:"industries"`
	Geographies     []string  `json:"geographies"` // contains GeographyGlobal for worldwide offers
	IntentTags      []string  `json:"intent_tags,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	CompetitorCount int       `json:"competitor_count"`
}

// IsGlobal reports whether the opportunity accepts applicants from any
// geography.
func (o *Opportunity) IsGlobal() bool {
	for _, g := range o.Geographies {
		if g == GeographyGlobal {
			return true
		}
	}
	return false
}

// Validate checks structural invariants that the engine depends on.
func (o *Opportunity) Validate() error {
	if o.ID == "" {
		return &InvalidInputError{Reason: "opportunity has no ID"}
	}
	if o.AmountMin > o.AmountMax {
		return &InvalidInputError{
			OpportunityID: o.ID,
			Reason:        fmt.Sprintf("amount range inverted: min %.2f > max %.2f", o.AmountMin, o.AmountMax),
		}
	}
	return nil
}

// FactorScore is one factor's contribution to an opportunity's total score.
type FactorScore struct {
	Key      string  `json:"key"`      // machine key: "fundingAmount"
	Name     string  `json:"name"`     // human name: "Funding amount fit"
	Raw      float64 `json:"raw"`      // raw score in [0, 1], before weighting
	Weight   float64 `json:"weight"`   // weight applied
	Weighted float64 `json:"weighted"` // Raw * Weight
}

// MatchResult is the per-opportunity output of a ranking pass.
// TotalScore is exactly the sum of the weighted contributions in Breakdown.
type MatchResult struct {
	OpportunityID string        `json:"opportunity_id"`
	Title         string        `json:"title,omitempty"`
	TotalScore    float64       `json:"total_score"`
	Breakdown     []FactorScore `json:"breakdown"`
}

// ValidationError reports a rejected weight update.
type ValidationError struct {
	Factor string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Factor == "" {
		return "invalid weights: " + e.Reason
	}
	return fmt.Sprintf("invalid weight for %q: %s", e.Factor, e.Reason)
}

// InvalidInputError reports a malformed opportunity passed to the engine.
type InvalidInputError struct {
	OpportunityID string
	Reason        string
}

func (e *InvalidInputError) Error() string {
	if e.OpportunityID == "" {
		return "invalid opportunity: " + e.Reason
	}
	return fmt.Sprintf("invalid opportunity %s: %s", e.OpportunityID, e.Reason)
}
