// Package surface defines output rendering for fundmatch rankings.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"
	"time"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

// Ranking is the renderable view of one ranking pass.
type Ranking struct {
	ApplicantID string                 `json:"applicant_id,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
	Weights     matching.WeightVector  `json:"weights"`
	Results     []matching.MatchResult `json:"results"`
}

// Renderer produces formatted output from a Ranking.
type Renderer interface {
	// Render writes the formatted ranking to the writer.
	Render(w io.Writer, ranking *Ranking) error
}
