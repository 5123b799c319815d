package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fundmatch/fundmatch/pkg/config"
	"github.com/fundmatch/fundmatch/pkg/matching"
	"github.com/fundmatch/fundmatch/pkg/surface"
)

func newRankCmd() *cobra.Command {
	var (
		profilePath string
		catalogPath string
		configPath  string
		outputFmt   string
		maxResults  int
		saveReport  bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank opportunities against an applicant profile",
		Long:  `Loads a profile and an opportunity catalog from JSON files, scores every opportunity, and renders the ranking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(rankOpts{
				profilePath: profilePath,
				catalogPath: catalogPath,
				configPath:  configPath,
				outputFmt:   outputFmt,
				maxResults:  maxResults,
				saveReport:  saveReport,
			})
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to applicant profile JSON (required)")
	cmd.Flags().StringVar(&catalogPath, "opportunities", "", "Path to opportunity catalog JSON")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: search parents for .fundmatch/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().IntVar(&maxResults, "top", 0, "Show only the top N results (0 = all)")
	cmd.Flags().BoolVar(&saveReport, "save", false, "Archive the full report under the cache directory")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

type rankOpts struct {
	profilePath string
	catalogPath string
	configPath  string
	outputFmt   string
	maxResults  int
	saveReport  bool
}

func runRank(opts rankOpts) error {
	cfg, err := loadCLIConfig(opts.configPath)
	if err != nil {
		return err
	}

	profile, err := loadProfile(opts.profilePath)
	if err != nil {
		return err
	}

	catalogPath := firstNonEmpty(opts.catalogPath, cfg.Catalog.OpportunitiesFile)
	if catalogPath == "" {
		return fmt.Errorf("no opportunity catalog: pass --opportunities or set catalog.opportunities_file in the config")
	}
	opportunities, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	weights, err := cfg.Weights()
	if err != nil {
		return fmt.Errorf("config weights: %w", err)
	}

	engine := matching.NewEngine(cfg.Factors(nil)...)
	results, err := engine.Rank(profile, opportunities, weights)
	if err != nil {
		return fmt.Errorf("ranking: %w", err)
	}

	ranking := &surface.Ranking{
		ApplicantID: profile.ApplicantID,
		GeneratedAt: time.Now().UTC(),
		Weights:     weights,
		Results:     results,
	}

	if opts.saveReport {
		saveRankingReport(ranking)
	}

	var renderer surface.Renderer
	switch opts.outputFmt {
	case "json":
		renderer = &surface.JSONRenderer{}
	default:
		renderer = &surface.TerminalRenderer{MaxResults: opts.maxResults}
	}
	if err := renderer.Render(os.Stdout, ranking); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	return nil
}

func loadCLIConfig(path string) (*config.Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		path = config.FindConfigFile(cwd)
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func loadProfile(path string) (*matching.ApplicantProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var profile matching.ApplicantProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &profile, nil
}

func loadCatalog(path string) ([]matching.Opportunity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading opportunity catalog: %w", err)
	}

	// Accept either a bare array or an {"opportunities": [...]} wrapper.
	var list []matching.Opportunity
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Opportunities []matching.Opportunity `json:"opportunities"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing opportunity catalog %s: %w", path, err)
	}
	return wrapped.Opportunities, nil
}

// saveRankingReport archives a ranking under the report directory. Failures
// are warnings, not errors: the ranking was still produced.
func saveRankingReport(ranking *surface.Ranking) {
	dir := config.ReportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create report dir: %v\n", err)
		return
	}

	data, err := json.MarshalIndent(ranking, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal report: %v\n", err)
		return
	}

	path := filepath.Join(dir, uuid.NewString()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save report: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Report saved: %s\n", path)
}
