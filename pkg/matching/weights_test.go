package matching_test

import (
	"errors"
	"math"
	"testing"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

func TestDefaultWeightsComplete(t *testing.T) {
	w := matching.DefaultWeights()
	if !w.Complete() {
		t.Fatal("default vector is missing factor keys")
	}
	for k, v := range w {
		if v < 0 {
			t.Errorf("default weight for %s is negative: %v", k, v)
		}
	}
	if len(w) != len(matching.FactorKeys) {
		t.Errorf("default vector has %d entries, want %d", len(w), len(matching.FactorKeys))
	}
}

func TestWeightVectorValidate(t *testing.T) {
	tests := []struct {
		name    string
		vector  matching.WeightVector
		wantErr bool
	}{
		{"empty is valid", matching.WeightVector{}, false},
		{"zero weight is valid", matching.WeightVector{matching.FactorIntent: 0}, false},
		{"negative rejected", matching.WeightVector{matching.FactorFundingType: -1}, true},
		{"NaN rejected", matching.WeightVector{matching.FactorIndustry: math.NaN()}, true},
		{"+Inf rejected", matching.WeightVector{matching.FactorGeography: math.Inf(1)}, true},
		{"-Inf rejected", matching.WeightVector{matching.FactorGeography: math.Inf(-1)}, true},
		{"unknown factor rejected", matching.WeightVector{"charisma": 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vector.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *matching.ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestWeightVectorCloneIsIndependent(t *testing.T) {
	orig := matching.DefaultWeights()
	cp := orig.Clone()
	cp[matching.FactorIntent] = 99

	if orig[matching.FactorIntent] == 99 {
		t.Error("mutating the clone changed the original")
	}
}
