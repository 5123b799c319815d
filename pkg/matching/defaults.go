package matching

import "time"

// Default recency windows: the bonus decays linearly from publication and
// is exhausted after roughly six months.
const (
	DefaultFreshWindowDays = 0
	DefaultOuterWindowDays = 180
)

// DefaultFactors returns the standard factor set in canonical order.
// Pass a nil clock to use wall time.
func DefaultFactors(now func() time.Time) []Factor {
	return []Factor{
		&FundingTypeFactor{},
		&AmountFitFactor{},
		&StageFactor{},
		&IndustryFactor{},
		&GeographyFactor{},
		&IntentFactor{},
		&RecencyFactor{
			FreshWindowDays: DefaultFreshWindowDays,
			OuterWindowDays: DefaultOuterWindowDays,
			Now:             now,
		},
		&CompetitionFactor{},
	}
}
