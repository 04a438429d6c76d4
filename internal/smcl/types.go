package smcl

import "time"

// Command selects the operation the service manager client performs (-c)
type Command string

const (
	CmdGetProcessList Command = "GET_PROCESS_LIST"
	CmdStartProcess   Command = "START_PROCESS"
	CmdStopProcess    Command = "STOP_PROCESS"
	CmdSetData        Command = "SET_DATA"
)

// StopMode qualifies STOP_PROCESS (-m)
type StopMode string

const (
	// StopNormal passes no -m flag
	StopNormal StopMode = ""
	// StopAbnormal terminates the process abnormally
	StopAbnormal StopMode = "A"
	// StopShutdown shuts the process down
	StopShutdown StopMode = "S"
)

// DataField names a SET_DATA field (-d)
type DataField string

const (
	FieldAutostart DataField = "Autostart"
	FieldCommand   DataField = "Command"
	FieldStartPath DataField = "StartPath"
)

// Connection is the immutable set of parameters needed to reach a service manager
type Connection struct {
	Path        string
	Addr        string
	Phrase      string
	Password    string
	Certificate string
	Key         string
	Chain       string
}

// Result is the captured outcome of one invocation of the client binary
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}
