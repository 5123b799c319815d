package matching

// StageFactor scores 1.0 when the applicant's business stage is one of the
// opportunity's eligible stages. An empty eligible set matches nobody.
type StageFactor struct{}

func (f *StageFactor) Key() string  { return FactorBusinessStage }
func (f *StageFactor) Name() string { return "Business stage" }

func (f *StageFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	for _, s := range opp.Stages {
		if s == profile.Stage && s != "" {
			return 1
		}
	}
	return 0
}
