package matching

import "sort"

// Factor is one scored dimension of match quality. Implementations must be
// pure: Evaluate reads only its arguments and the factor's own tuning fields
// and returns a raw score in [0, 1].
type Factor interface {
	// Key returns the machine-readable factor identifier.
	Key() string
	// Name returns the human-readable factor name.
	Name() string
	// Evaluate computes the raw, unweighted score for one pairing.
	Evaluate(profile *ApplicantProfile, opp *Opportunity) float64
}

// Engine ranks opportunities for an applicant profile. It holds no mutable
// state, so one Engine may serve concurrent Rank calls without coordination.
type Engine struct {
	factors []Factor
}

// NewEngine creates an engine with the given factors.
func NewEngine(factors ...Factor) *Engine {
	return &Engine{factors: factors}
}

// Rank scores every opportunity against the profile under the given weights
// and returns results ordered best-first. Ties on total score break by
// maximum funding amount descending, then by opportunity ID ascending, so
// identical inputs always produce identical output.
//
// A factor absent from the weight vector contributes with weight 0. An empty
// opportunity slice yields an empty result. A malformed opportunity aborts
// the whole call with InvalidInputError.
func (e *Engine) Rank(profile *ApplicantProfile, opportunities []Opportunity, weights WeightVector) ([]MatchResult, error) {
	if profile == nil {
		return nil, &InvalidInputError{Reason: "profile is nil"}
	}
	for i := range opportunities {
		if err := opportunities[i].Validate(); err != nil {
			return nil, err
		}
	}

	results := make([]MatchResult, 0, len(opportunities))
	for i := range opportunities {
		results = append(results, e.score(profile, &opportunities[i], weights))
	}

	// Track amounts for the tie-break without re-scanning the input.
	amountMax := make(map[string]float64, len(opportunities))
	for i := range opportunities {
		amountMax[opportunities[i].ID] = opportunities[i].AmountMax
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		ai, aj := amountMax[results[i].OpportunityID], amountMax[results[j].OpportunityID]
		if ai != aj {
			return ai > aj
		}
		return results[i].OpportunityID < results[j].OpportunityID
	})

	return results, nil
}

// score evaluates all factors for one pairing and sums the weighted
// contributions. The total is exactly the sum of the breakdown entries.
func (e *Engine) score(profile *ApplicantProfile, opp *Opportunity, weights WeightVector) MatchResult {
	result := MatchResult{
		OpportunityID: opp.ID,
		Title:         opp.Title,
		Breakdown:     make([]FactorScore, 0, len(e.factors)),
	}

	for _, f := range e.factors {
		raw := f.Evaluate(profile, opp)
		weight := weights[f.Key()] // missing key scores with weight 0
		weighted := raw * weight

		result.Breakdown = append(result.Breakdown, FactorScore{
			Key:      f.Key(),
			Name:     f.Name(),
			Raw:      raw,
			Weight:   weight,
			Weighted: weighted,
		})
		result.TotalScore += weighted
	}

	return result
}
