package matching

// FundingTypeFactor scores 1.0 when the opportunity accepts at least one of
// the applicant's desired funding types.
type FundingTypeFactor struct{}

func (f *FundingTypeFactor) Key() string  { return FactorFundingType }
func (f *FundingTypeFactor) Name() string { return "Funding type" }

func (f *FundingTypeFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	if len(profile.DesiredTypes) == 0 || len(opp.AcceptedTypes) == 0 {
		return 0
	}
	accepted := make(map[string]bool, len(opp.AcceptedTypes))
	for _, t := range opp.AcceptedTypes {
		accepted[t] = true
	}
	for _, t := range profile.DesiredTypes {
		if accepted[t] {
			return 1
		}
	}
	return 0
}
