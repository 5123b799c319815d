package matching_test

import (
	"math"
	"testing"
	"time"

	"github.com/fundmatch/fundmatch/pkg/matching"
)

func recencyScore(f *matching.RecencyFactor, ageDays float64) float64 {
	opp := &matching.Opportunity{
		ID:          "opp",
		PublishedAt: fixedNow.Add(-time.Duration(ageDays * 24 * float64(time.Hour))),
	}
	return f.Evaluate(&matching.ApplicantProfile{}, opp)
}

func TestRecencyDefaultCurve(t *testing.T) {
	f := &matching.RecencyFactor{
		FreshWindowDays: matching.DefaultFreshWindowDays,
		OuterWindowDays: matching.DefaultOuterWindowDays,
		Now:             clock,
	}

	if got := recencyScore(f, 0); got != 1.0 {
		t.Errorf("age 0 = %v, want 1.0", got)
	}
	got := recencyScore(f, 10)
	if math.Abs(got-170.0/180.0) > 1e-9 {
		t.Errorf("age 10 = %v, want %v", got, 170.0/180.0)
	}
	if got := recencyScore(f, 180); got != 0 {
		t.Errorf("age 180 = %v, want 0", got)
	}
	if got := recencyScore(f, 400); got != 0 {
		t.Errorf("age 400 = %v, want 0", got)
	}
}

func TestRecencyFreshWindow(t *testing.T) {
	// A configured fresh window holds the bonus at 1.0 before decaying.
	f := &matching.RecencyFactor{FreshWindowDays: 30, OuterWindowDays: 180, Now: clock}

	if got := recencyScore(f, 10); got != 1.0 {
		t.Errorf("inside fresh window = %v, want 1.0", got)
	}
	if got := recencyScore(f, 30); got != 1.0 {
		t.Errorf("at fresh boundary = %v, want 1.0", got)
	}
	got := recencyScore(f, 105)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("midway through decay = %v, want 0.5", got)
	}
}

func TestRecencyMonotonicallyDecreasing(t *testing.T) {
	f := &matching.RecencyFactor{FreshWindowDays: 30, OuterWindowDays: 180, Now: clock}

	prev := math.Inf(1)
	for age := 0.0; age <= 220; age += 7 {
		got := recencyScore(f, age)
		if got > prev {
			t.Fatalf("score increased with age: %v at %v days (prev %v)", got, age, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("score %v outside [0,1] at %v days", got, age)
		}
		prev = got
	}
}

func TestRecencyUnsetTimestampScoresZero(t *testing.T) {
	f := &matching.RecencyFactor{FreshWindowDays: 0, OuterWindowDays: 180, Now: clock}
	got := f.Evaluate(&matching.ApplicantProfile{}, &matching.Opportunity{ID: "opp"})
	if got != 0 {
		t.Errorf("zero PublishedAt = %v, want 0", got)
	}
}
