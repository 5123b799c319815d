package matching

// IndustryFactor scores 1.0 when the applicant's industry is among the
// opportunity's target industries. An empty target set matches nobody.
type IndustryFactor struct{}

func (f *IndustryFactor) Key() string  { return FactorIndustry }
func (f *IndustryFactor) Name() string { return "Industry" }

func (f *IndustryFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	for _, ind := range opp.Industries {
		if ind == profile.Industry && ind != "" {
			return 1
		}
	}
	return 0
}
