package solver

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/thalesfsp/tpe"
)

//////
// Const, vars, types.
//////

var (
	// ErrUnknownTrial is returned when a tell references a trial id with no
	// pending ask.
	ErrUnknownTrial = errors.New("solver: unknown trial")

	// ErrEmptySearchSpace is returned when a create declares no variables.
	ErrEmptySearchSpace = errors.New("solver: search space has no variables")
)

// Session drives one optimization run: one TPE optimizer per declared
// variable, plus the bookkeeping joining asks with their eventual tells.
//
// A session is owned by exactly one handler and is not internally
// synchronized; the message loop serializes access to it.
type Session struct {
	// domains are the driver-declared variables, in declaration order.
	domains []VariableDomain

	// optimizers holds one optimizer per domain, same order.
	optimizers []*tpe.TpeOptimizer

	// evaluating maps a trial id to the internal (warped) params proposed
	// for it, until the driver tells the observed value.
	evaluating map[uint64][]float64

	// rng is the session's random number generator, seeded by the driver
	// so repeated runs are reproducible.
	rng *rand.Rand
}

//////
// Methods.
//////

// Ask proposes the next native-domain parameter values for the given trial.
//
// The internal (warped) values are remembered under the trial id so the
// matching Tell can feed exactly what the optimizers proposed back to them.
func (s *Session) Ask(trialID uint64) ([]float64, error) {
	internal := make([]float64, len(s.optimizers))
	native := make([]float64, len(s.optimizers))

	for i, optim := range s.optimizers {
		x, err := optim.Ask(s.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to ask variable %s: %w", s.domains[i].Name, err)
		}

		internal[i] = x
		native[i] = s.domains[i].Unwarp(x)
	}

	s.evaluating[trialID] = internal

	return native, nil
}

// Tell reports the objective value observed for a previously asked trial to
// every optimizer of the session.
func (s *Session) Tell(trialID uint64, value float64) error {
	internal, ok := s.evaluating[trialID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTrial, trialID)
	}

	delete(s.evaluating, trialID)

	for i, optim := range s.optimizers {
		if err := optim.Tell(internal[i], value); err != nil {
			return fmt.Errorf("failed to tell variable %s: %w", s.domains[i].Name, err)
		}
	}

	return nil
}

// Pending returns the number of asked trials awaiting their tell.
func (s *Session) Pending() int {
	return len(s.evaluating)
}

//////
// Factory.
//////

// NewSession creates a session for the given search space, one optimizer
// per variable.
//
// Returns:
// - ErrEmptySearchSpace if no variables are declared
// - ErrInvalidDomain / ErrUnknownKind for inconsistent variable domains
// - the core's build errors for an invalid optimizer config
func NewSession(config Config, domains []VariableDomain, seed uint64) (*Session, error) {
	if len(domains) == 0 {
		return nil, ErrEmptySearchSpace
	}

	optimizers := make([]*tpe.TpeOptimizer, len(domains))

	for i, domain := range domains {
		if err := domain.Validate(); err != nil {
			return nil, err
		}

		paramRange, err := domain.internalRange()
		if err != nil {
			return nil, err
		}

		optim, err := tpe.NewTpeOptimizerWithConfig(
			config.optimizerConfig(), domain.estimatorBuilder(), paramRange)
		if err != nil {
			return nil, fmt.Errorf("failed to build optimizer for variable %s: %w",
				domain.Name, err)
		}

		optimizers[i] = optim
	}

	return &Session{
		domains:    domains,
		optimizers: optimizers,
		evaluating: make(map[uint64][]float64),
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}
