package sim

import (
	"errors"

	"github.com/talgya/slumber/internal/events"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/project"
)

// ErrInvalidInput is returned for malformed arguments such as unknown ids
// or out-of-range values.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownAgent is returned when an agent id matches nobody on the roster.
var ErrUnknownAgent = errors.New("unknown agent")

// Failures raised by the owning subsystems, re-exported so callers match
// against one package.
var (
	ErrInsufficientFunds     = invest.ErrInsufficientFunds
	ErrUnknownInvestment     = invest.ErrUnknownInvestment
	ErrUnknownEvent          = events.ErrUnknownEvent
	ErrAlreadyResolved       = events.ErrAlreadyResolved
	ErrStateMachineViolation = project.ErrStateMachineViolation
)
