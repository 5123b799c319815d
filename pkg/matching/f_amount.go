package matching

import "math"

// AmountFitFactor scores how well the applicant's desired amount fits the
// opportunity's funding range: 1.0 inside [min, max] inclusive, then a
// linear decay based on the distance outside the range relative to the
// range width, floored at 0.
type AmountFitFactor struct{}

func (f *AmountFitFactor) Key() string  { return FactorFundingAmount }
func (f *AmountFitFactor) Name() string { return "Funding amount fit" }

func (f *AmountFitFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	desired := profile.DesiredAmount

	if desired >= opp.AmountMin && desired <= opp.AmountMax {
		return 1
	}

	var distance float64
	if desired < opp.AmountMin {
		distance = opp.AmountMin - desired
	} else {
		distance = desired - opp.AmountMax
	}

	// A zero-width range still decays over a unit distance rather than
	// dividing by zero.
	width := math.Max(opp.AmountMax-opp.AmountMin, 1)

	return math.Max(0, 1-distance/width)
}
