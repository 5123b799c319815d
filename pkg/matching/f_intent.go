package matching

// IntentFactor scores 1.0 when the applicant declared an intent token and
// the opportunity tags itself with it. A missing intent is neutral (0.0),
// never an error.
type IntentFactor struct{}

func (f *IntentFactor) Key() string  { return FactorIntent }
func (f *IntentFactor) Name() string { return "Intent alignment" }

func (f *IntentFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	if profile.Intent == "" {
		return 0
	}
	for _, tag := range opp.IntentTags {
		if tag == profile.Intent {
			return 1
		}
	}
	return 0
}
