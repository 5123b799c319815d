// Package main provides the fundmatch CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "fundmatch",
		Short: "Opportunity matching for funding marketplaces",
		Long: `Fundmatch ranks funding opportunities against an applicant profile
across weighted factors and explains every score.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newRankCmd(),
		newWeightsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
