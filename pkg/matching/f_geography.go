package matching

// GeographyFactor scores 1.0 when the opportunity is global or its target
// geographies include the applicant's. An empty target set matches nobody.
type GeographyFactor struct{}

func (f *GeographyFactor) Key() string  { return FactorGeography }
func (f *GeographyFactor) Name() string { return "Geography" }

func (f *GeographyFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	if opp.IsGlobal() {
		return 1
	}
	for _, g := range opp.Geographies {
		if g == profile.Geography && g != "" {
			return 1
		}
	}
	return 0
}
