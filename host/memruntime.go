// ABOUTME: In-memory Runtime implementation for tests and the simulator.
// ABOUTME: Seedable participants, scriptable activation, inspectable context store.

package host

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/2389/urimux/events"
)

// ErrParticipantNotFound indicates the requested participant is not installed.
var ErrParticipantNotFound = errors.New("participant not found")

// Participant is a seeded entry in a MemRuntime.
type Participant struct {
	ID       string
	Name     string
	Active   bool
	Manifest Manifest

	// Exported is the capability value returned once the participant is
	// active. May be nil to model a peer that exports nothing.
	Exported any

	// ActivateFn, if set, replaces the default activation behavior. Useful
	// for modeling failing or hung activations.
	ActivateFn func(ctx context.Context) (any, error)
}

// MemRuntime is an in-memory Runtime. It is safe for concurrent use.
type MemRuntime struct {
	mu           sync.RWMutex
	participants map[string]*Participant
	focused      string
	hasFocus     bool
	contextStore map[string]bool
	warnings     []string

	focusChanged        *events.Signal
	participantsChanged *events.Signal
	logger              *slog.Logger
}

// NewMemRuntime creates an empty in-memory runtime. Pass nil logger for default.
func NewMemRuntime(logger *slog.Logger) *MemRuntime {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemRuntime{
		participants:        make(map[string]*Participant),
		contextStore:        make(map[string]bool),
		focusChanged:        events.NewSignal(),
		participantsChanged: events.NewSignal(),
		logger:              logger.With("component", "memruntime"),
	}
}

// AddParticipant installs a participant and fires ParticipantsChanged.
func (m *MemRuntime) AddParticipant(p *Participant) {
	m.mu.Lock()
	m.participants[p.ID] = p
	m.mu.Unlock()
	m.participantsChanged.Emit()
}

// RemoveParticipant uninstalls a participant and fires ParticipantsChanged.
func (m *MemRuntime) RemoveParticipant(id string) {
	m.mu.Lock()
	delete(m.participants, id)
	m.mu.Unlock()
	m.participantsChanged.Emit()
}

// Installed returns every installed participant, sorted by ID for
// deterministic iteration.
func (m *MemRuntime) Installed() []Info {
	m.mu.RLock()
	infos := make([]Info, 0, len(m.participants))
	for _, p := range m.participants {
		infos = append(infos, Info{ID: p.ID, Name: p.Name, Active: p.Active, Manifest: p.Manifest})
	}
	m.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Participant looks up a single participant by ID.
func (m *MemRuntime) Participant(id string) (Info, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.participants[id]
	if !ok {
		return Info{}, false
	}
	return Info{ID: p.ID, Name: p.Name, Active: p.Active, Manifest: p.Manifest}, true
}

// Exported returns the participant's exported value if it is active.
func (m *MemRuntime) Exported(id string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.participants[id]
	if !ok || !p.Active {
		return nil
	}
	return p.Exported
}

// Activate marks the participant active and returns its exported value.
// If the participant has an ActivateFn, that runs instead and its result
// becomes the exported value.
func (m *MemRuntime) Activate(ctx context.Context, id string) (any, error) {
	m.mu.Lock()
	p, ok := m.participants[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrParticipantNotFound
	}
	fn := p.ActivateFn
	m.mu.Unlock()

	if fn != nil {
		exported, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		p.Active = true
		p.Exported = exported
		m.mu.Unlock()
		return exported, nil
	}

	m.mu.Lock()
	p.Active = true
	exported := p.Exported
	m.mu.Unlock()
	return exported, nil
}

// ActiveResource returns the currently focused resource, if any.
func (m *MemRuntime) ActiveResource() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focused, m.hasFocus
}

// SetActiveResource focuses a resource and fires FocusChanged.
func (m *MemRuntime) SetActiveResource(uri string) {
	m.mu.Lock()
	m.focused = uri
	m.hasFocus = true
	m.mu.Unlock()
	m.focusChanged.Emit()
}

// ClearActiveResource removes focus and fires FocusChanged.
func (m *MemRuntime) ClearActiveResource() {
	m.mu.Lock()
	m.focused = ""
	m.hasFocus = false
	m.mu.Unlock()
	m.focusChanged.Emit()
}

// SetContext writes a boolean flag into the in-memory context store.
func (m *MemRuntime) SetContext(_ context.Context, key string, value bool) error {
	m.mu.Lock()
	m.contextStore[key] = value
	m.mu.Unlock()

	m.logger.Debug("context flag set", "key", key, "value", value)
	return nil
}

// ContextValue reads a flag back out of the context store. The second return
// is false if the key was never written.
func (m *MemRuntime) ContextValue(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.contextStore[key]
	return v, ok
}

// ShowWarning records the warning for later inspection.
func (m *MemRuntime) ShowWarning(message string) {
	m.mu.Lock()
	m.warnings = append(m.warnings, message)
	m.mu.Unlock()

	m.logger.Warn("participant warning", "message", message)
}

// Warnings returns all warnings shown so far.
func (m *MemRuntime) Warnings() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.warnings))
	copy(out, m.warnings)
	return out
}

// FocusChanged fires when the focused resource changes.
func (m *MemRuntime) FocusChanged() *events.Signal { return m.focusChanged }

// ParticipantsChanged fires when the installed participant set changes.
func (m *MemRuntime) ParticipantsChanged() *events.Signal { return m.participantsChanged }
