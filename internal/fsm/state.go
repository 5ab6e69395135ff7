// Package fsm is the screen state machine: which screen is active and where
// each screen event leads.
package fsm

import "fmt"

// State identifies the active screen.
type State int

const (
	MainMenu State = iota
	ListItemsMenu
	CreateDIDWorkflow
	ListDIDsWorkflow
	ListVCsWorkflow
	CreateVCMenu
	CreateNormalVCWorkflow
	CreateSDVCWorkflow
	VerifyVCWorkflow
	CreateVPWorkflow
	ExitAppWorkflow
)

var stateNames = [...]string{
	MainMenu:               "MainMenu",
	ListItemsMenu:          "ListItemsMenu",
	CreateDIDWorkflow:      "CreateDIDWorkflow",
	ListDIDsWorkflow:       "ListDIDsWorkflow",
	ListVCsWorkflow:        "ListVCsWorkflow",
	CreateVCMenu:           "CreateVCMenu",
	CreateNormalVCWorkflow: "CreateNormalVCWorkflow",
	CreateSDVCWorkflow:     "CreateSDVCWorkflow",
	VerifyVCWorkflow:       "VerifyVCWorkflow",
	CreateVPWorkflow:       "CreateVPWorkflow",
	ExitAppWorkflow:        "ExitAppWorkflow",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// States lists every state in declaration order.
func States() []State {
	out := make([]State, len(stateNames))
	for i := range out {
		out[i] = State(i)
	}
	return out
}

// Event is what a screen reports when it finishes. Events carry no payload.
type Event int

const (
	SelectCreateDID Event = iota
	SelectListDIDs
	SelectListVCs
	SelectCreateVC
	CreateNormalVC
	CreateSDVC
	SelectVerifyVC
	SelectCreateVP
	SelectListItems
	Cancel
	Success
	Exit
)

var eventNames = [...]string{
	SelectCreateDID: "SelectCreateDID",
	SelectListDIDs:  "SelectListDIDs",
	SelectListVCs:   "SelectListVCs",
	SelectCreateVC:  "SelectCreateVC",
	CreateNormalVC:  "CreateNormalVC",
	CreateSDVC:      "CreateSDVC",
	SelectVerifyVC:  "SelectVerifyVC",
	SelectCreateVP:  "SelectCreateVP",
	SelectListItems: "SelectListItems",
	Cancel:          "Cancel",
	Success:         "Success",
	Exit:            "Exit",
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Events lists every event in declaration order.
func Events() []Event {
	out := make([]Event, len(eventNames))
	for i := range out {
		out[i] = Event(i)
	}
	return out
}
