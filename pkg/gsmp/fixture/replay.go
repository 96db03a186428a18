package fixture

import (
	"fmt"
	"math/rand"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/context"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmplog"
)

// FiredEvent is one realized firing Replay drove through ctx, paired with
// the Time the fixture recorded for that step when it was captured.
type FiredEvent struct {
	Key      string
	Time     float64
	Expected float64
}

// Replay drives ctx through every step of s in order. "enable" and
// "disable" steps apply at their recorded Time directly; a "fire" step
// does not simply forward its recorded Time into Fire — Replay calls
// ctx.Next to independently re-derive the next firing key and time from
// the sampler's current state, asserts the key matches the step's
// recorded Key, and fires at the realized time. This is what makes
// replay a reproducibility check rather than a scripted no-op: the same
// fixture driven with the same seed must re-derive the same key and a
// firing time matching the step's recorded Time, not merely echo it.
// Unknown actions return a *gsmperr.ConfigurationError.
func Replay(s *Scenario, ctx *context.Context[string], rng *rand.Rand, log *gsmplog.Logger) ([]FiredEvent, error) {
	var fired []FiredEvent
	tNow := 0.0
	for i, step := range s.Steps {
		switch step.Action {
		case "enable":
			d, err := step.Distribution.Build(log)
			if err != nil {
				return fired, err
			}
			if err := ctx.Enable(step.Key, d, step.Te, step.Time, rng); err != nil {
				return fired, fmt.Errorf("fixture: step %d enable %s: %w", i, step.Key, err)
			}
			tNow = step.Time
		case "disable":
			if err := ctx.Disable(step.Key, step.Time); err != nil {
				return fired, fmt.Errorf("fixture: step %d disable %s: %w", i, step.Key, err)
			}
			tNow = step.Time
		case "fire":
			realizedTime, key, ok := ctx.Next(tNow, rng)
			if !ok {
				return fired, fmt.Errorf("fixture: step %d fire %s: no clock is enabled", i, step.Key)
			}
			if key != step.Key {
				return fired, fmt.Errorf("fixture: step %d: expected %s to fire next, got %s", i, step.Key, key)
			}
			if err := ctx.Fire(key, realizedTime); err != nil {
				return fired, fmt.Errorf("fixture: step %d fire %s: %w", i, step.Key, err)
			}
			fired = append(fired, FiredEvent{Key: key, Time: realizedTime, Expected: step.Time})
			tNow = realizedTime
		default:
			return fired, gsmperr.NewConfigurationError(fmt.Sprintf("step %d: unrecognized action %q", i, step.Action))
		}
	}
	return fired, nil
}
