package logger

// EventType identifies the kind of a logged event.
type EventType string

const (
	EventLoginAttempt   EventType = "login_attempt"
	EventRunCommand     EventType = "run_command"
	EventUnknownCommand EventType = "unknown_command"
	EventSessionEnd     EventType = "session_end"
)

// Result is the outcome of an operation.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Event is a typed payload waiting to be recorded.
type Event struct {
	Type EventType
	Data map[string]interface{}
}

func commandList(name string, args []string) []interface{} {
	out := []interface{}{name}
	for _, arg := range args {
		out = append(out, arg)
	}
	return out
}

// NewLoginAttempt records a login, successful or not.
func NewLoginAttempt(username, remoteAddr string, result Result) Event {
	return Event{
		Type: EventLoginAttempt,
		Data: map[string]interface{}{
			"username":    username,
			"remote_addr": remoteAddr,
			"result":      string(result),
		},
	}
}

// NewRunCommand records a command that ran to completion.
func NewRunCommand(name string, args []string, status int) Event {
	return Event{
		Type: EventRunCommand,
		Data: map[string]interface{}{
			"command": commandList(name, args),
			"status":  status,
		},
	}
}

// NewUnknownCommand records a command that wasn't registered.
func NewUnknownCommand(name string, args []string) Event {
	return Event{
		Type: EventUnknownCommand,
		Data: map[string]interface{}{
			"command": commandList(name, args),
		},
	}
}

// NewSessionEnd records a logout.
func NewSessionEnd(username string, lastStatus int) Event {
	return Event{
		Type: EventSessionEnd,
		Data: map[string]interface{}{
			"username": username,
			"status":   lastStatus,
		},
	}
}
