package fixture

import (
	"math/rand"
	"testing"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/context"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/sampler"
)

const sirYAML = `
name: sir-race
method: direct
steps:
  - action: enable
    key: infection
    distribution: {family: exponential, rate: 0.5}
    time: 0
  - action: enable
    key: recovery
    distribution: {family: exponential, rate: 1.0}
    time: 0
`

func TestParseValidatesDistributionFamilies(t *testing.T) {
	s, err := Parse([]byte(sirYAML), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "sir-race" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", s)
	}
}

func TestParseRejectsUnknownDistributionFamily(t *testing.T) {
	bad := `
name: bad
steps:
  - action: enable
    key: x
    distribution: {family: bogus}
    time: 0
`
	if _, err := Parse([]byte(bad), nil); err == nil {
		t.Fatalf("expected a configuration error for an unrecognized family")
	}
}

func TestParseRejectsEnableWithoutDistribution(t *testing.T) {
	bad := `
name: bad
steps:
  - action: enable
    key: x
    time: 0
`
	if _, err := Parse([]byte(bad), nil); err == nil {
		t.Fatalf("expected a configuration error for enable with no distribution")
	}
}

func TestReplayDrivesContextThroughSteps(t *testing.T) {
	yaml := `
name: two-clock-race
steps:
  - action: enable
    key: a
    distribution: {family: exponential, rate: 1}
    time: 0
  - action: enable
    key: b
    distribution: {family: exponential, rate: 2}
    time: 0
`
	s, err := Parse([]byte(yaml), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := context.New[string](sampler.NewDirectCall[string](sampler.RemovalTree), nil, nil)
	rng := rand.New(rand.NewSource(1))
	if _, err := Replay(s, ctx, rng, nil); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if ctx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ctx.Len())
	}

	tFire, key, ok := ctx.Next(0, rng)
	if !ok {
		t.Fatalf("expected a firing")
	}
	if err := ctx.Fire(key, tFire); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if ctx.Len() != 1 {
		t.Fatalf("Len() after fire = %d, want 1", ctx.Len())
	}
}

func TestReplayFireStepReDerivesRealizedTime(t *testing.T) {
	yaml := `
name: single-clock
steps:
  - action: enable
    key: a
    distribution: {family: exponential, rate: 1}
    time: 0
  - action: fire
    key: a
    time: 0.6931
`
	s, err := Parse([]byte(yaml), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := context.New[string](sampler.NewFirstToFire[string](), nil, nil)
	rng := rand.New(rand.NewSource(7))
	fired, err := Replay(s, ctx, rng, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(fired) != 1 || fired[0].Key != "a" {
		t.Fatalf("fired = %+v, want one event for key a", fired)
	}
	if ctx.Len() != 0 {
		t.Fatalf("Len() after fire = %d, want 0", ctx.Len())
	}
}

func TestReplayFireStepRejectsWrongKey(t *testing.T) {
	yaml := `
name: single-clock
steps:
  - action: enable
    key: a
    distribution: {family: exponential, rate: 1}
    time: 0
  - action: fire
    key: wrong-key
    time: 0.1
`
	s, err := Parse([]byte(yaml), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := context.New[string](sampler.NewFirstToFire[string](), nil, nil)
	rng := rand.New(rand.NewSource(7))
	if _, err := Replay(s, ctx, rng, nil); err == nil {
		t.Fatalf("expected an error when the recorded key does not match the realized firing")
	}
}
