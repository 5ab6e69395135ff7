package fsm

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition matches every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid screen transition")

// InvalidTransitionError reports a (state, event) pair with no rule. It means
// a screen emitted an event its state cannot produce.
type InvalidTransitionError struct {
	State State
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%v: no rule for %s on %s", ErrInvalidTransition, e.Event, e.State)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// anyState matches every state in a rule.
const anyState State = -1

type rule struct {
	from  State
	event Event
	to    State
}

// rules is the transition table, ordered highest to lowest precedence. The
// first matching rule wins, so state-specific rules must stay above the
// generic fallback: MainMenu+Cancel leads to ExitAppWorkflow, not MainMenu.
var rules = []rule{
	{MainMenu, SelectListItems, ListItemsMenu},
	{MainMenu, SelectCreateDID, CreateDIDWorkflow},
	{MainMenu, SelectCreateVC, CreateVCMenu},
	{MainMenu, SelectCreateVP, CreateVPWorkflow},
	{MainMenu, SelectVerifyVC, VerifyVCWorkflow},
	{MainMenu, SelectListDIDs, ListDIDsWorkflow},
	{MainMenu, SelectListVCs, ListVCsWorkflow},
	{MainMenu, Cancel, ExitAppWorkflow},

	{ListItemsMenu, SelectListDIDs, ListDIDsWorkflow},
	{ListItemsMenu, SelectListVCs, ListVCsWorkflow},
	{ListItemsMenu, Cancel, MainMenu},

	{CreateVCMenu, CreateNormalVC, CreateNormalVCWorkflow},
	{CreateVCMenu, CreateSDVC, CreateSDVCWorkflow},
	{CreateVCMenu, Cancel, MainMenu},

	// generic fallback
	{anyState, Cancel, MainMenu},
	{anyState, Success, MainMenu},
}

// Next looks up the transition for (s, e). ok is false when no rule applies.
func Next(s State, e Event) (State, bool) {
	for _, r := range rules {
		if (r.from == s || r.from == anyState) && r.event == e {
			return r.to, true
		}
	}
	return s, false
}

// Machine owns the current screen state.
type Machine struct {
	current State
}

// New returns a machine in MainMenu, the only initial state.
func New() *Machine { return &Machine{current: MainMenu} }

func (m *Machine) Current() State { return m.current }

// Consume applies e. On an invalid transition the state is unchanged.
func (m *Machine) Consume(e Event) (State, error) {
	next, ok := Next(m.current, e)
	if !ok {
		return m.current, &InvalidTransitionError{State: m.current, Event: e}
	}
	m.current = next
	return next, nil
}
