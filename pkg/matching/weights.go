package matching

import "math"

// Factor keys. The set is closed: the engine scores exactly these eight
// dimensions and the weight store rejects anything else.
const (
	FactorFundingType      = "fundingType"
	FactorFundingAmount    = "fundingAmount"
	FactorBusinessStage    = "businessStage"
	FactorIndustry         = "industry"
	FactorGeography        = "geography"
	FactorIntent           = "intent"
	FactorRecencyBonus     = "recencyBonus"
	FactorCompetitionBonus = "competitionBonus"
)

// FactorKeys lists all factor keys in canonical breakdown order.
var FactorKeys = []string{
	FactorFundingType,
	FactorFundingAmount,
	FactorBusinessStage,
	FactorIndustry,
	FactorGeography,
	FactorIntent,
	FactorRecencyBonus,
	FactorCompetitionBonus,
}

// WeightVector maps factor keys to non-negative multipliers. Weights are
// independent: there is no sum-to-one constraint, and only relative totals
// under a single vector are meaningful.
type WeightVector map[string]float64

// DefaultWeights returns the built-in weight vector used until an admin
// configures one.
func DefaultWeights() WeightVector {
	return WeightVector{
		FactorFundingType:      10,
		FactorFundingAmount:    10,
		FactorBusinessStage:    10,
		FactorIndustry:         10,
		FactorGeography:        5,
		FactorIntent:           5,
		FactorRecencyBonus:     3,
		FactorCompetitionBonus: 2,
	}
}

// Clone returns an independent copy of the vector.
func (w WeightVector) Clone() WeightVector {
	out := make(WeightVector, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Validate checks that every entry uses a known factor key and a finite,
// non-negative value.
func (w WeightVector) Validate() error {
	for k, v := range w {
		if !knownFactor(k) {
			return &ValidationError{Factor: k, Reason: "unknown factor"}
		}
		if math.IsNaN(v) {
			return &ValidationError{Factor: k, Reason: "weight is NaN"}
		}
		if math.IsInf(v, 0) {
			return &ValidationError{Factor: k, Reason: "weight is infinite"}
		}
		if v < 0 {
			return &ValidationError{Factor: k, Reason: "weight is negative"}
		}
	}
	return nil
}

// Complete reports whether every factor key is present.
func (w WeightVector) Complete() bool {
	for _, k := range FactorKeys {
		if _, ok := w[k]; !ok {
			return false
		}
	}
	return true
}

func knownFactor(key string) bool {
	for _, k := range FactorKeys {
		if k == key {
			return true
		}
	}
	return false
}
