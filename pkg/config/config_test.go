package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Matching.OuterWindowDays != matching.DefaultOuterWindowDays {
		t.Errorf("expected default outer window %v, got %v",
			float64(matching.DefaultOuterWindowDays), cfg.Matching.OuterWindowDays)
	}
	if cfg.Matching.Weights == nil {
		t.Error("expected Weights map to be initialized, got nil")
	}
	if cfg.Catalog.CacheSize != 20 {
		t.Errorf("expected default cache size 20, got %d", cfg.Catalog.CacheSize)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Matching.OuterWindowDays != matching.DefaultOuterWindowDays {
					t.Errorf("expected default outer window, got %v", cfg.Matching.OuterWindowDays)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
matching:
  fresh_window_days: 30
  outer_window_days: 365
  weights:
    geography: 8
catalog:
  opportunities_file: /data/opportunities.json
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Matching.FreshWindowDays != 30 {
					t.Errorf("fresh window = %v, want 30", cfg.Matching.FreshWindowDays)
				}
				if cfg.Matching.OuterWindowDays != 365 {
					t.Errorf("outer window = %v, want 365", cfg.Matching.OuterWindowDays)
				}
				if cfg.Matching.Weights["geography"] != 8 {
					t.Errorf("geography override = %v, want 8", cfg.Matching.Weights["geography"])
				}
				if cfg.Catalog.OpportunitiesFile != "/data/opportunities.json" {
					t.Errorf("opportunities file = %q", cfg.Catalog.OpportunitiesFile)
				}
			},
		},
		{
			name:    "malformed YAML errors",
			yaml:    "matching: [not a mapping",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.yaml != "" {
				if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
					t.Fatalf("writing fixture: %v", err)
				}
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matching.Weights["industry"] = 15

	path := filepath.Join(t.TempDir(), ".fundmatch", "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Matching.Weights["industry"] != 15 {
		t.Errorf("round-tripped industry weight = %v, want 15", loaded.Matching.Weights["industry"])
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(filepath.Join(root, ".fundmatch"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, ".fundmatch", "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("matching: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found := FindConfigFile(nested)
	if found != cfgPath {
		t.Errorf("FindConfigFile = %q, want %q", found, cfgPath)
	}

	if found := FindConfigFile(t.TempDir()); found != "" {
		t.Errorf("expected no config found, got %q", found)
	}
}

func TestWeightsRejectsInvalidOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matching.Weights["fundingType"] = -2

	_, err := cfg.Weights()
	if err == nil {
		t.Fatal("expected error for negative override")
	}
	if !strings.Contains(err.Error(), "fundingType") {
		t.Errorf("error %q does not name the offending factor", err)
	}
}

func TestWeightsMergesOverDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matching.Weights["intent"] = 9

	w, err := cfg.Weights()
	if err != nil {
		t.Fatalf("Weights() error: %v", err)
	}
	if w[matching.FactorIntent] != 9 {
		t.Errorf("intent = %v, want 9", w[matching.FactorIntent])
	}
	if w[matching.FactorFundingType] != 10 {
		t.Errorf("fundingType = %v, want default 10", w[matching.FactorFundingType])
	}
}

func TestFactorsAppliesRecencyKnobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matching.FreshWindowDays = 30
	cfg.Matching.OuterWindowDays = 365

	for _, f := range cfg.Factors(nil) {
		if rf, ok := f.(*matching.RecencyFactor); ok {
			if rf.FreshWindowDays != 30 || rf.OuterWindowDays != 365 {
				t.Errorf("recency windows = (%v, %v), want (30, 365)",
					rf.FreshWindowDays, rf.OuterWindowDays)
			}
			return
		}
	}
	t.Fatal("no RecencyFactor in configured factor set")
}
