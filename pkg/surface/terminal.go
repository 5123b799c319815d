package surface

import (
	"fmt"
	"io"
	"os"
)

// TerminalRenderer renders a Ranking as colored terminal output.
type TerminalRenderer struct {
	// MaxResults limits how many opportunities are printed; 0 means all.
	MaxResults int
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func green(s string) string {
	if noColor() {
		return s
	}
	return colorGreen + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, ranking *Ranking) error {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("fundmatch: %d opportunities ranked", len(ranking.Results))))

	if len(ranking.Results) == 0 {
		fmt.Fprintln(w, "No opportunities to rank.")
		return nil
	}

	limit := len(ranking.Results)
	if r.MaxResults > 0 && r.MaxResults < limit {
		limit = r.MaxResults
	}

	for i := 0; i < limit; i++ {
		res := &ranking.Results[i]

		title := res.Title
		if title == "" {
			title = res.OpportunityID
		}
		fmt.Fprintf(w, "%2d. %s %s\n", i+1,
			green(fmt.Sprintf("%7.2f", res.TotalScore)), bold(title))

		for _, fs := range res.Breakdown {
			if fs.Weighted == 0 && fs.Raw == 0 {
				continue
			}
			fmt.Fprintf(w, "      %s\n",
				dim(fmt.Sprintf("%-18s raw %.2f x weight %.1f = %.2f", fs.Name, fs.Raw, fs.Weight, fs.Weighted)))
		}
	}

	if limit < len(ranking.Results) {
		fmt.Fprintf(w, "\n%s\n", dim(fmt.Sprintf("... and %d more", len(ranking.Results)-limit)))
	}

	return nil
}
