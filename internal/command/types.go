package command

import "fmt"

// Action is one of the menu commands understood by the dialog
type Action int

const (
	// ActionUnknown is the zero value and never returned by Parse
	ActionUnknown Action = iota
	// ActionRestart stops the process, waits, then starts it again
	ActionRestart
	// ActionStart starts the process
	ActionStart
	// ActionStop stops the process
	ActionStop
	// ActionStopAbnormal stops the process with mode A
	ActionStopAbnormal
	// ActionStopShutdown stops the process with mode S
	ActionStopShutdown
	// ActionAutostartOn enables autostart
	ActionAutostartOn
	// ActionAutostartOff disables autostart
	ActionAutostartOff
	// ActionModifyCommand rewrites the start command
	ActionModifyCommand
	// ActionModifyPath rewrites the start path
	ActionModifyPath
	// ActionQuit leaves the dialog
	ActionQuit
	// ActionRefresh redraws the table
	ActionRefresh
)

var tokens = map[Action]string{
	ActionRestart:       "R",
	ActionStart:         "S",
	ActionStop:          "K",
	ActionStopAbnormal:  "KA",
	ActionStopShutdown:  "KS",
	ActionAutostartOn:   "MA",
	ActionAutostartOff:  "MO",
	ActionModifyCommand: "MC",
	ActionModifyPath:    "MP",
	ActionQuit:          "Q",
	ActionRefresh:       "RE",
}

var labels = map[Action]string{
	ActionRestart:       "restart",
	ActionStart:         "start",
	ActionStop:          "stop",
	ActionStopAbnormal:  "stop abnormally",
	ActionStopShutdown:  "shutdown",
	ActionAutostartOn:   "autostart on",
	ActionAutostartOff:  "autostart off",
	ActionModifyCommand: "modify command",
	ActionModifyPath:    "modify start path",
	ActionQuit:          "quit",
	ActionRefresh:       "refresh",
}

var byToken = func() map[string]Action {
	m := make(map[string]Action, len(tokens))
	for a, tok := range tokens {
		m[tok] = a
	}
	return m
}()

// Lookup returns the action for a menu token such as "KA"
func Lookup(token string) (Action, bool) {
	a, ok := byToken[token]
	return a, ok
}

// String returns the menu token
func (a Action) String() string {
	if tok, ok := tokens[a]; ok {
		return tok
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Label returns the text shown in the menu
func (a Action) Label() string {
	if l, ok := labels[a]; ok {
		return l
	}
	return "unknown"
}

// Bulk reports whether the action may target several processes at once
func (a Action) Bulk() bool {
	switch a {
	case ActionRestart, ActionStart, ActionStop, ActionStopAbnormal,
		ActionAutostartOn, ActionAutostartOff:
		return true
	}
	return false
}

// SingleTarget reports whether the action operates on exactly one process
func (a Action) SingleTarget() bool {
	switch a {
	case ActionStopShutdown, ActionModifyCommand, ActionModifyPath:
		return true
	}
	return false
}

// Control reports whether the action drives the dialog rather than a process
func (a Action) Control() bool {
	return a == ActionQuit || a == ActionRefresh
}

// NeedsData reports whether the action requires free text from the user
func (a Action) NeedsData() bool {
	return a == ActionModifyCommand || a == ActionModifyPath
}

// Command is a validated line of user input
type Command struct {
	Action Action
	// Spec is the raw index list, empty when none was given or it was dropped
	Spec string
	// SpecDropped is set when a single-target action was given a list
	SpecDropped bool
}

// Notice returns the message to show when the index list was dropped
func (c Command) Notice() string {
	if !c.SpecDropped {
		return ""
	}
	return fmt.Sprintf("Action %s cannot be used with multiple processes", c.Action)
}
