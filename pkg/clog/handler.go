// Package clog carries the apex/log handler the daemon logs through. The
// handler writes single-line leveled entries and supports swapping its output
// at runtime, which the web API's logging endpoints rely on.
package clog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"
)

type Handler struct {
	mu     sync.Mutex
	Writer io.WriteCloser
}

var levelToStrings = [...]string{
	log.DebugLevel: "DEBUG",
	log.InfoLevel:  "INFO",
	log.WarnLevel:  "WARN",
	log.ErrorLevel: "ERROR",
	log.FatalLevel: "FATAL",
}

// field used for sorting.
type field struct {
	Name  string
	Value interface{}
}

// byName sorts fields by name.
type byName []field

func (a byName) Len() int           { return len(a) }
func (a byName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byName) Less(i, j int) bool { return a[i].Name < a[j].Name }

func NewHandler(w io.WriteCloser) *Handler {
	return &Handler{Writer: w}
}

// SetOutput closes the current output and starts writing to w.
func (h *Handler) SetOutput(w io.WriteCloser) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeWriter()
	h.Writer = w
}

func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeWriter()
}

// closeWriter closes the writer unless it is one of the process's standard
// streams. Callers must hold h.mu.
func (h *Handler) closeWriter() {
	if h.Writer == nil || h.Writer == os.Stdout || h.Writer == os.Stderr {
		return
	}

	_ = h.Writer.Close()
}

func (h *Handler) HandleLog(e *log.Entry) error {
	level := levelToStrings[e.Level]
	var fields []field

	for k, v := range e.Fields {
		fields = append(fields, field{k, v})
	}

	sort.Sort(byName(fields))

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, "%5s %s %-25s", level, time.Now().Format(time.DateTime), e.Message)

	for _, f := range fields {
		_, _ = fmt.Fprintf(&b, " %s=%v", f.Name, f.Value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = fmt.Fprintln(h.Writer, b.String())

	return nil
}
