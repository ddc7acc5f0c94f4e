// Package logging appends errors and optional JSON trace records to a single
// log file shared by every package.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tmux-stream-catalog.log"

// sink serialises writes so records from the poller and the UI loop never
// interleave within a line.
type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
}

var out = &sink{path: defaultLogFile}

// record is one trace line.
type record struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

func (s *sink) append(what string, write func(io.Writer) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
	}
}

// Error appends a timestamped line for err. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	out.append("logging", func(w io.Writer) error {
		_, werr := fmt.Fprintf(w, "%s %v\n", time.Now().Format("2006/01/02 15:04:05"), err)
		return werr
	})
}

// SetTraceEnabled toggles emission of trace records.
func SetTraceEnabled(enabled bool) {
	out.mu.Lock()
	out.trace = enabled
	out.mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes records.
func TraceEnabled() bool {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.trace
}

// Trace appends event as a JSON line when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	rec := record{Time: time.Now().UTC(), Event: event, Payload: payload}
	out.append("trace logging", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(rec)
	})
}

// Configure points the log at path, creating its directory. A blank path,
// or one whose directory cannot be created, selects the default file.
func Configure(path string) {
	next := defaultLogFile
	if strings.TrimSpace(path) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		} else {
			next = path
		}
	}
	out.mu.Lock()
	out.path = next
	out.mu.Unlock()
}

// Path returns the file currently receiving log output.
func Path() string {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.path
}
