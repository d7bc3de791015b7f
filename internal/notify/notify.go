// Package notify is a transient status channel in the manner of a toast
// stack: Loading opens a slot and returns its ID, and later calls update
// the same slot in place rather than appending new messages.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// ID addresses a notification slot.
type ID int

// Kind is the visual class of a notification.
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
)

// Notifier is the transient status channel.
type Notifier interface {
	// Loading opens a new slot showing a spinner-style message.
	Loading(msg string) ID
	// Update replaces the slot's loading message.
	Update(id ID, msg string)
	// Success resolves the slot with a success message; link, when
	// non-empty, is rendered alongside it.
	Success(id ID, msg, link string)
	// Fail resolves the slot with an error message.
	Fail(id ID, msg string)
	// Dismiss removes the slot without any terminal message.
	Dismiss(id ID)
}

// Console renders notifications as styled lines on a writer.
type Console struct {
	w    io.Writer
	next ID
}

var (
	styleLoading = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB800")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D26A")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)
	styleLink    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B4D8")).Underline(true)
)

// NewConsole creates a console notifier writing to stdout.
func NewConsole() *Console {
	return &Console{w: os.Stdout}
}

// NewConsoleWriter creates a console notifier on a custom writer.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Loading(msg string) ID {
	c.next++
	fmt.Fprintln(c.w, styleLoading.Render("… "+msg))
	return c.next
}

func (c *Console) Update(_ ID, msg string) {
	fmt.Fprintln(c.w, styleLoading.Render("… "+msg))
}

func (c *Console) Success(_ ID, msg, link string) {
	fmt.Fprintln(c.w, styleSuccess.Render("✓ "+msg))
	if link != "" {
		fmt.Fprintln(c.w, "  "+styleLink.Render(link))
	}
}

func (c *Console) Fail(_ ID, msg string) {
	fmt.Fprintln(c.w, styleError.Render("✗ "+msg))
}

func (c *Console) Dismiss(ID) {}

// Event records one notifier call, for tests and for the TUI status line.
type Event struct {
	ID   ID
	Kind Kind
	Msg  string
	Link string
}

// Recorder captures the notification sequence and the final state of each
// slot.
type Recorder struct {
	next   ID
	Events []Event
	// Active maps slot IDs to their latest event; dismissed slots are
	// removed.
	Active map[ID]Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Active: make(map[ID]Event)}
}

func (r *Recorder) Loading(msg string) ID {
	r.next++
	e := Event{ID: r.next, Kind: KindLoading, Msg: msg}
	r.Events = append(r.Events, e)
	r.Active[r.next] = e
	return r.next
}

func (r *Recorder) Update(id ID, msg string) {
	e := Event{ID: id, Kind: KindLoading, Msg: msg}
	r.Events = append(r.Events, e)
	r.Active[id] = e
}

func (r *Recorder) Success(id ID, msg, link string) {
	e := Event{ID: id, Kind: KindSuccess, Msg: msg, Link: link}
	r.Events = append(r.Events, e)
	r.Active[id] = e
}

func (r *Recorder) Fail(id ID, msg string) {
	e := Event{ID: id, Kind: KindError, Msg: msg}
	r.Events = append(r.Events, e)
	r.Active[id] = e
}

func (r *Recorder) Dismiss(id ID) {
	delete(r.Active, id)
}

// Last returns the most recent event, or a zero Event when none exist.
func (r *Recorder) Last() Event {
	if len(r.Events) == 0 {
		return Event{}
	}
	return r.Events[len(r.Events)-1]
}
