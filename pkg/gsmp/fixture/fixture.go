// Package fixture decodes YAML-tagged scenario files into worked
// examples the test suite and cmd/gsmpctl can drive through a
// context.Context, grounded on the teacher's pkg/config/config.go (for
// YAML-tagged declarative structs) and pkg/scenario/types.go +
// pkg/scenario/parser/parser.go (for the Parse/Load split). This is
// tooling, not a core wire format: pkg/gsmp/builder and pkg/gsmp/context
// never import this package.
package fixture

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gsmp-sim/gsmp/pkg/gsmp/dist"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmplog"
)

// DistributionSpec names one of the families pkg/gsmp/dist implements
// and the parameters it needs, so a YAML fixture can describe a
// distribution without embedding Go literals.
type DistributionSpec struct {
	Family string  `yaml:"family"`
	Rate   float64 `yaml:"rate,omitempty"`
	Shape  float64 `yaml:"shape,omitempty"`
	Scale  float64 `yaml:"scale,omitempty"`
	Lo     float64 `yaml:"lo,omitempty"`
	Hi     float64 `yaml:"hi,omitempty"`
}

// Build resolves a DistributionSpec into a concrete dist.Distribution,
// logging a warning (via log, if non-nil) and returning a
// *gsmperr.ConfigurationError for an unrecognized family.
func (s DistributionSpec) Build(log *gsmplog.Logger) (dist.Distribution, error) {
	switch strings.ToLower(s.Family) {
	case "exponential":
		return dist.Exponential{Rate: s.Rate}, nil
	case "gamma":
		return dist.Gamma{Shape: s.Shape, Rate: s.Rate}, nil
	case "weibull":
		return dist.Weibull{Shape: s.Shape, Scale: s.Scale}, nil
	case "uniform":
		return dist.Uniform{Lo: s.Lo, Hi: s.Hi}, nil
	case "never":
		return dist.Never{}, nil
	default:
		if log != nil {
			log.Warn("fixture: unrecognized distribution family", "family", s.Family)
		}
		return nil, gsmperr.NewConfigurationError(fmt.Sprintf("unrecognized distribution family %q", s.Family))
	}
}

// Step is one action in a worked trajectory: "enable", "disable", or
// "fire", applied to Key at Time (and, for "enable", with Distribution
// and zero-point Te).
type Step struct {
	Action       string            `yaml:"action"`
	Key          string            `yaml:"key"`
	Distribution *DistributionSpec `yaml:"distribution,omitempty"`
	Te           float64           `yaml:"te,omitempty"`
	Time         float64           `yaml:"time"`
}

// Scenario encodes one worked example: the sampler method it expects and
// the ordered sequence of steps a Context should reproduce (spec.md §6's
// "(action, key, distribution?, te?, time)" trajectory tuples).
type Scenario struct {
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
	Steps  []Step `yaml:"steps"`
}

// Load reads and parses a Scenario from a YAML file at path.
func Load(path string, log *gsmplog.Logger) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return Parse(data, log)
}

// Parse decodes a Scenario from YAML bytes and validates every step's
// distribution family up front, so a malformed fixture fails before any
// step is replayed.
func Parse(data []byte, log *gsmplog.Logger) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("fixture: parse YAML: %w", err)
	}
	for i, step := range s.Steps {
		if step.Action == "enable" {
			if step.Distribution == nil {
				return nil, gsmperr.NewConfigurationError(fmt.Sprintf("step %d: enable requires a distribution", i))
			}
			if _, err := step.Distribution.Build(log); err != nil {
				return nil, err
			}
		}
	}
	return &s, nil
}
