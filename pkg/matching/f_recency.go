package matching

import "time"

// RecencyFactor rewards recently published opportunities. The raw score is
// 1.0 up to FreshWindowDays of age, decays linearly to 0.0 at
// OuterWindowDays, and stays 0.0 beyond. An unset publish timestamp scores
// 0.0 (treated as arbitrarily old).
type RecencyFactor struct {
	FreshWindowDays float64          // age at which decay starts
	OuterWindowDays float64          // age at which the bonus reaches zero
	Now             func() time.Time // nil means time.Now
}

func (f *RecencyFactor) Key() string  { return FactorRecencyBonus }
func (f *RecencyFactor) Name() string { return "Recency bonus" }

func (f *RecencyFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	if opp.PublishedAt.IsZero() {
		return 0
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	ageDays := now().Sub(opp.PublishedAt).Hours() / 24

	switch {
	case ageDays <= f.FreshWindowDays:
		return 1
	case ageDays >= f.OuterWindowDays:
		return 0
	default:
		return (f.OuterWindowDays - ageDays) / (f.OuterWindowDays - f.FreshWindowDays)
	}
}
