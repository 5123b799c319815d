package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fundmatch/fundmatch/pkg/config"
	"github.com/fundmatch/fundmatch/pkg/matching"
)

func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect and tune factor weights",
	}

	cmd.AddCommand(newWeightsShowCmd(), newWeightsSetCmd())
	return cmd
}

func newWeightsShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective weight vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(configPath)
			if err != nil {
				return err
			}
			weights, err := cfg.Weights()
			if err != nil {
				return fmt.Errorf("config weights: %w", err)
			}

			for _, key := range matching.FactorKeys {
				marker := ""
				if _, overridden := cfg.Matching.Weights[key]; overridden {
					marker = "  (override)"
				}
				fmt.Printf("%-18s %6.2f%s\n", key, weights[key], marker)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	return cmd
}

func newWeightsSetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set key=value [key=value ...]",
		Short: "Set factor weight overrides in the config file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := parseWeightArgs(args)
			if err != nil {
				return err
			}

			path := configPath
			if path == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				path = config.FindConfigFile(cwd)
				if path == "" {
					path = filepath.Join(cwd, ".fundmatch", "config.yaml")
				}
			}

			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.Matching.Weights == nil {
				cfg.Matching.Weights = map[string]float64{}
			}
			for k, v := range updates {
				cfg.Matching.Weights[k] = v
			}

			// Reject the whole update if any override is invalid.
			if _, err := cfg.Weights(); err != nil {
				return err
			}

			if err := config.Save(path, cfg); err != nil {
				return err
			}

			keys := make([]string, 0, len(updates))
			for k := range updates {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s = %g\n", k, updates[k])
			}
			fmt.Fprintf(os.Stderr, "Saved: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	return cmd
}

func parseWeightArgs(args []string) (map[string]float64, error) {
	updates := make(map[string]float64, len(args))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight for %s: %q is not a number", key, val)
		}
		updates[key] = f
	}
	return updates, nil
}
