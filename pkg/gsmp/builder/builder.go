// Package builder implements the declarative sampler configuration of
// spec.md §6: a Spec names a sampling method and a set of optional
// features, and Build validates the combination and returns a fully
// wired context.Context, grounded on the teacher's pkg/config/config.go
// (declarative YAML-shaped structs) and pkg/scenario/validator/validator.go
// (build-time validation that accumulates problems before reporting).
package builder

import (
	"github.com/gsmp-sim/gsmp/pkg/gsmp/context"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/crn"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmperr"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/gsmplog"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/likelihood"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/metrics"
	"github.com/gsmp-sim/gsmp/pkg/gsmp/sampler"
)

// Method selects a concrete sampler implementation (spec.md §6).
type Method int

const (
	FirstToFireMethod Method = iota
	FirstReactionMethod
	DirectMethod
	CombinedNextReactionMethod
	MultiSamplerMethod
)

// DirectConfig configures DirectMethod's storage variant.
type DirectConfig struct {
	Storage sampler.Storage
}

// MultiSamplerConfig configures MultiSamplerMethod: one nested Spec per
// named sub-sampler, plus the classifier routing clocks to them.
type MultiSamplerConfig[K comparable] struct {
	Subs       map[string]Spec[K]
	Classifier sampler.Classifier[K]
}

// Spec is the declarative configuration of spec.md §6's builder surface.
type Spec[K comparable] struct {
	Method       Method
	Direct       DirectConfig
	MultiSampler *MultiSamplerConfig[K]
	Policy       sampler.Policy

	PathLikelihood  bool
	StepLikelihood  bool
	LikelihoodCount int
	CommonRandom    bool

	Metrics *metrics.Config
	Logger  *gsmplog.Logger
}

func (s Spec[K]) log(msg string, fields ...interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields...)
	}
}

// Build validates s and assembles a context.Context wrapping the chosen
// sampler and whichever optional decorators s enables.
func (s Spec[K]) Build() (*context.Context[K], error) {
	if s.LikelihoodCount < 0 {
		return nil, gsmperr.NewConfigurationError("likelihood_count must be >= 0")
	}
	if s.LikelihoodCount > 1 && !s.PathLikelihood {
		return nil, gsmperr.NewConfigurationError("likelihood_count > 1 requires path_likelihood")
	}
	if s.LikelihoodCount > 1 {
		return nil, gsmperr.NewConfigurationError("likelihood_count > 1 produces parallel likelihood tracks (likelihood.PathLikelihoods), which is not a single sampler.Sampler decorator context.Context can host — call builder.BuildPathLikelihoods instead")
	}

	base, err := s.buildSampler()
	if err != nil {
		return nil, err
	}
	s.log("assembled sampler", "method", s.Method)

	var samp sampler.Sampler[K] = base
	if s.CommonRandom {
		samp = crn.NewRecorder[K](samp)
		s.log("assembled CRN recorder")
	}

	var acc context.Likelihood[K]
	if s.StepLikelihood || s.PathLikelihood {
		acc = likelihood.NewAccountant[K]()
		s.log("assembled likelihood accountant")
	}

	var met context.Metrics
	if s.Metrics != nil {
		d, err := metrics.New(*s.Metrics)
		if err != nil {
			return nil, err
		}
		met = d
		s.log("assembled metrics decorator")
	}

	return context.New[K](samp, acc, met), nil
}

// BuildPathLikelihoods assembles the K-parallel-track analogue of Build,
// for Specs with LikelihoodCount > 1. It returns the sampler (optionally
// CRN-wrapped) and a *likelihood.PathLikelihoods the caller drives
// alongside it directly, since PathLikelihoods operates on a
// distribution vector rather than the single dist.Distribution
// context.Context's Likelihood interface expects.
func (s Spec[K]) BuildPathLikelihoods() (sampler.Sampler[K], *likelihood.PathLikelihoods[K], error) {
	if s.LikelihoodCount <= 1 {
		return nil, nil, gsmperr.NewConfigurationError("BuildPathLikelihoods requires likelihood_count > 1")
	}
	base, err := s.buildSampler()
	if err != nil {
		return nil, nil, err
	}
	s.log("assembled sampler", "method", s.Method)

	var samp sampler.Sampler[K] = base
	if s.CommonRandom {
		samp = crn.NewRecorder[K](samp)
		s.log("assembled CRN recorder")
	}

	tracks := likelihood.NewPathLikelihoods[K](s.LikelihoodCount)
	s.log("assembled parallel likelihood tracks", "tracks", s.LikelihoodCount)
	return samp, tracks, nil
}

func (s Spec[K]) buildSampler() (sampler.Sampler[K], error) {
	switch s.Method {
	case FirstToFireMethod:
		return sampler.NewFirstToFire[K](), nil
	case FirstReactionMethod:
		return sampler.NewFirstReaction[K](), nil
	case DirectMethod:
		return sampler.NewDirectCall[K](s.Direct.Storage), nil
	case CombinedNextReactionMethod:
		return sampler.NewCombinedNextReactionWithPolicy[K](s.Policy), nil
	case MultiSamplerMethod:
		if s.MultiSampler == nil {
			return nil, gsmperr.NewConfigurationError("MultiSamplerMethod requires a MultiSampler config")
		}
		subs := make(map[string]sampler.Sampler[K], len(s.MultiSampler.Subs))
		for name, sub := range s.MultiSampler.Subs {
			built, err := sub.buildSampler()
			if err != nil {
				return nil, err
			}
			subs[name] = built
		}
		return sampler.NewMultiSampler[K](subs, s.MultiSampler.Classifier), nil
	default:
		return nil, gsmperr.NewConfigurationError("unrecognized sampler method")
	}
}
