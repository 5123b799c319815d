package matching

// CompetitionFactor rewards opportunities with few existing applicants:
// 1.0 at zero competitors, decaying as 1/(1+n). Monotonically decreasing
// in the competitor count; a negative count (unknown) is treated as zero.
type CompetitionFactor struct{}

func (f *CompetitionFactor) Key() string  { return FactorCompetitionBonus }
func (f *CompetitionFactor) Name() string { return "Competition bonus" }

func (f *CompetitionFactor) Evaluate(profile *ApplicantProfile, opp *Opportunity) float64 {
	n := opp.CompetitorCount
	if n < 0 {
		n = 0
	}
	return 1 / (1 + float64(n))
}
