package logger

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	LoginAttempt   LoginAttemptReport   `json:"login_attempt_report"`
	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	Sessions       InteractionReport    `json:"sessions"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	r.Sessions.Update(le)

	switch le.Type {
	case EventLoginAttempt:
		r.LoginAttempt.update(le)
	case EventRunCommand:
		r.RunCommand.update(le)
	case EventUnknownCommand:
		r.UnknownCommand.update(le)
	case EventSessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(string(le.Type))
	}
}

type LoginAttemptReport struct {
	// List of usernames and their counts.
	Usernames StrCounter `json:"usernames"`
	// List of login attempt results and their counts.
	Results StrCounter `json:"results"`
}

func (r *LoginAttemptReport) update(le *LogEntry) {
	r.Usernames.Increment(le.Username())
	r.Results.Increment(string(le.Result()))
}

type RunCommandReport struct {
	CommandNames StrCounter  `json:"command_names"`
	Statuses     PathCounter `json:"statuses"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	command := le.Command()
	if len(command) == 0 {
		return
	}
	r.CommandNames.Increment(command[0])
	r.Statuses.Increment(command[0], statusString(le.Status()))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	if command := le.Command(); len(command) > 0 {
		r.CommandNames.Increment(command[0])
	}
}

// InteractionReport groups commands by session.
type InteractionReport struct {
	// Map of sessionID -> interactions
	interactions map[string]*InteractiveSession
}

type InteractiveSession struct {
	Username   string   `json:"username"`
	RemoteAddr string   `json:"remote_addr,omitempty"`
	LogEntries int      `json:"log_entries"`
	Commands   []string `json:"commands"`
}

func (i *InteractiveSession) Update(le *LogEntry) {
	i.LogEntries++

	switch le.Type {
	case EventLoginAttempt:
		i.Username = le.Username()
		i.RemoteAddr = le.RemoteAddr()
	case EventRunCommand, EventUnknownCommand:
		i.Commands = append(i.Commands, strings.Join(le.Command(), " "))
	}
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string]*InteractiveSession)
	}
}

// Session returns the interactions of a single session.
func (i *InteractionReport) Session(sessionID string) (*InteractiveSession, bool) {
	i.init()
	s, ok := i.interactions[sessionID]
	return s, ok
}

// MarshalJSON implements custom JSON marshaler.
func (i InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	sessionID := le.SessionID
	if sessionID == "" {
		return
	}
	report, ok := i.interactions[sessionID]
	if !ok {
		report = &InteractiveSession{}
		i.interactions[sessionID] = report
	}

	report.Update(le)
}

func statusString(status int) string {
	if status == 0 {
		return "ok"
	}
	return "failed"
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	internal map[string]int
}

// Increment adds one to the given tuple.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if ctr.internal == nil {
		ctr.internal = make(map[string]int)
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count int      `json:"count"`
		Path  []string `json:"path"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		out = append(out, Count{Count: v, Path: fromKey(k)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return toKey(out[i].Path...) < toKey(out[j].Path...)
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
