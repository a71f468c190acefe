package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// LogEntry is a single recorded event.
type LogEntry struct {
	TimestampMicros int64
	SessionID       string
	Type            EventType
	Data            *structpb.Struct
}

func (le *LogEntry) field(name string) *structpb.Value {
	return le.Data.GetFields()[name]
}

// Command returns the command line of run_command and unknown_command events.
func (le *LogEntry) Command() []string {
	var out []string
	for _, v := range le.field("command").GetListValue().GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

// Status returns the exit status carried by the event, if any.
func (le *LogEntry) Status() int {
	return int(le.field("status").GetNumberValue())
}

// Username returns the user of login_attempt and session_end events.
func (le *LogEntry) Username() string {
	return le.field("username").GetStringValue()
}

// RemoteAddr returns the client address of login_attempt events.
func (le *LogEntry) RemoteAddr() string {
	return le.field("remote_addr").GetStringValue()
}

// Result returns the result of login_attempt events.
func (le *LogEntry) Result() Result {
	return Result(le.field("result").GetStringValue())
}

// MarshalJSON encodes the entry with protojson.
func (le *LogEntry) MarshalJSON() ([]byte, error) {
	data := le.Data
	if data == nil {
		data = &structpb.Struct{}
	}

	entry := &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"timestamp_micros": structpb.NewNumberValue(float64(le.TimestampMicros)),
			"session_id":       structpb.NewStringValue(le.SessionID),
			"type":             structpb.NewStringValue(string(le.Type)),
			"data":             structpb.NewStructValue(data),
		},
	}
	return protojson.Marshal(entry)
}

// UnmarshalJSON decodes an entry written by MarshalJSON.
func (le *LogEntry) UnmarshalJSON(b []byte) error {
	var entry structpb.Struct
	if err := protojson.Unmarshal(b, &entry); err != nil {
		return err
	}

	fields := entry.GetFields()
	le.TimestampMicros = int64(fields["timestamp_micros"].GetNumberValue())
	le.SessionID = fields["session_id"].GetStringValue()
	le.Type = EventType(fields["type"].GetStringValue())
	le.Data = fields["data"].GetStructValue()
	return nil
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interaction event logs for the shell.
type Logger struct {
	Record LogRecorder

	now func() time.Time
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It's safe for concurrent sessions.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) timestamp() int64 {
	if l.now != nil {
		return l.now().UnixMicro()
	}
	return time.Now().UnixMicro()
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	data, err := structpb.NewStruct(event.Data)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", event.Type, err)
	}

	return l.Record(&LogEntry{
		TimestampMicros: l.timestamp(),
		SessionID:       sessionID,
		Type:            event.Type,
		Data:            data,
	})
}

// NewSession creates a logger with a fresh session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.New().String()}
}

// Sessionless creates a logger for events outside of any session.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record logs the event.
func (l *SessionLogger) Record(event Event) error {
	return l.recordEvent(l.sessionID, event)
}
