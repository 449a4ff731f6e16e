// ABOUTME: Coordinator arbitrating URI ownership between host participants.
// ABOUTME: Discovers peers, projects the owned-by-other context flag, repairs double ownership.

package ownership

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/2389/urimux/discovery"
	"github.com/2389/urimux/events"
	"github.com/2389/urimux/host"
)

// defaultOwnedElsewhereWarning is shown when the active editor is handled by
// a coordination peer and no custom message is supplied.
const defaultOwnedElsewhereWarning = "This editor is handled by another extension. Close and reopen it to take over."

// ParticipantInfo identifies a registered coordination peer.
type ParticipantInfo struct {
	ID   string
	Name string
}

// Options configures a Coordinator.
type Options struct {
	// SelfID is this participant's stable identifier; it is excluded from
	// discovery results.
	SelfID string

	// HideUIContextKey is the context-store key receiving the projected
	// "owned by another participant" flag.
	HideUIContextKey string

	// Callbacks may be supplied here or later via Initialize. Either way,
	// the first set wins.
	Callbacks *Callbacks

	// Registry overrides the default in-memory peer registry. Tests seed
	// deterministic peer sets through this.
	Registry PeerRegistry

	// Provider overrides the default runtime-metadata discovery provider.
	Provider discovery.Provider

	// Tracer receives structured coordination records. Defaults to NopTracer.
	Tracer Tracer

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Coordinator arbitrates URI ownership for one participant. It exports a
// capability object peers query, registers peer capabilities as discovery
// resolves, and on every relevant trigger recomputes the ownership context
// projection, yielding its own claim when it finds the focused resource
// owned on both sides.
type Coordinator struct {
	runtime    host.Runtime
	selfID     string
	contextKey string
	registry   PeerRegistry
	provider   discovery.Provider
	tracer     Tracer
	logger     *slog.Logger

	api       *API
	observers *events.Signal
	effects   *effectQueue

	ctx    context.Context
	cancel context.CancelFunc

	initMu      sync.Mutex
	initialized bool
	release     func(ctx context.Context, uri string) error

	// recomputeMu serializes projection passes so each pass reads one
	// consistent ownership snapshot.
	recomputeMu sync.Mutex
}

// New constructs a coordinator. The capability object is built synchronously
// so it can be exported to peers immediately, even before the owner's
// backing store is ready; peer discovery and activation run asynchronously
// and never block construction.
func New(runtime host.Runtime, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "ownership", "participant", opts.SelfID)

	registry := opts.Registry
	if registry == nil {
		registry = NewMemoryRegistry()
	}
	provider := opts.Provider
	if provider == nil {
		provider = discovery.NewRuntimeProvider(runtime)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = NopTracer{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		runtime:    runtime,
		selfID:     opts.SelfID,
		contextKey: opts.HideUIContextKey,
		registry:   registry,
		provider:   provider,
		tracer:     tracer,
		logger:     logger,
		api:        newAPI(),
		observers:  events.NewSignal(),
		ctx:        ctx,
		cancel:     cancel,
	}
	c.effects = newEffectQueue(ctx, logger)

	if opts.Callbacks != nil {
		c.Initialize(*opts.Callbacks)
	}

	c.watch(runtime.FocusChanged(), c.recompute)
	c.watch(runtime.ParticipantsChanged(), c.refresh)

	c.recompute()
	go c.discover(true)

	return c
}

// Initialize wires in the owner's callbacks after construction. The first
// call wins; later calls are dropped silently so the owner may call this
// optimistically from multiple lifecycle points. Initialization never
// re-runs discovery.
func (c *Coordinator) Initialize(callbacks Callbacks) {
	c.initMu.Lock()
	if c.initialized {
		c.initMu.Unlock()
		c.logger.Debug("initialize called again, keeping first callbacks")
		return
	}
	c.initialized = true
	c.release = callbacks.ReleaseURI
	c.initMu.Unlock()

	c.api.bind(callbacks.OwnsURI)
	if callbacks.OwnershipChanged != nil {
		c.watch(callbacks.OwnershipChanged, func() {
			c.api.changed.Emit()
			c.recompute()
		})
	}
	c.recompute()
}

// API returns the capability object to export to peer participants.
func (c *Coordinator) API() *API { return c.api }

// Observers fires on every projection pass, whether or not anything
// changed. Local display surfaces (decorations, lenses) refresh on it
// without touching the context store.
func (c *Coordinator) Observers() *events.Signal { return c.observers }

// IsOwnedByCoordinatingExtension reports whether any registered peer claims
// the resource.
func (c *Coordinator) IsOwnedByCoordinatingExtension(uri string) bool {
	_, ok := c.OwningCoordinatingExtension(uri)
	return ok
}

// OwningCoordinatingExtension returns the ID of the registered peer claiming
// the resource, if any.
func (c *Coordinator) OwningCoordinatingExtension(uri string) (string, bool) {
	canonical := CanonicalURI(uri)
	for _, peer := range c.registry.All() {
		if peer.Capability.OwnsURI(canonical) {
			return peer.ID, true
		}
	}
	return "", false
}

// CoordinatingExtensions returns every registered peer.
func (c *Coordinator) CoordinatingExtensions() []ParticipantInfo {
	entries := c.registry.All()
	infos := make([]ParticipantInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, ParticipantInfo{ID: entry.ID, Name: entry.Name})
	}
	return infos
}

// IsActiveEditorOwnedByOtherExtensionWithWarning reports whether the focused
// resource is claimed by a peer and, if so, surfaces a warning to the user.
// Pass an empty message for the default wording.
func (c *Coordinator) IsActiveEditorOwnedByOtherExtensionWithWarning(message string) bool {
	focused, ok := c.runtime.ActiveResource()
	if !ok {
		return false
	}
	owner, owned := c.OwningCoordinatingExtension(focused)
	if !owned {
		return false
	}

	if message == "" {
		message = defaultOwnedElsewhereWarning
	}
	c.runtime.ShowWarning(message)
	c.logger.Debug("active editor owned by coordination peer", "peer", owner)
	return true
}

// Flush blocks until every queued fire-and-forget effect (context pushes,
// release invocations) enqueued before the call has run.
func (c *Coordinator) Flush(ctx context.Context) error {
	return c.effects.flush(ctx)
}

// Close stops event handling and the effect worker. Peer registrations are
// left as-is; the coordinator holds no external resources.
func (c *Coordinator) Close() {
	c.cancel()
}

// watch subscribes fn to a signal for the coordinator's lifetime.
func (c *Coordinator) watch(sig *events.Signal, fn func()) {
	ch, _ := sig.Subscribe(c.ctx)
	go func() {
		for {
			select {
			case <-ch:
				fn()
			case <-c.ctx.Done():
				return
			}
		}
	}()
}

// discover runs one discovery pass. Active peers register immediately from
// their exported value; inactive peers are activated asynchronously and
// register when activation resolves. Activation failures leave the peer
// unregistered and are never fatal. Refresh passes (participant-set changes)
// only pick up peers that are already active; they neither activate nor
// prune.
func (c *Coordinator) discover(activateInactive bool) {
	descriptors, err := c.provider.Discover(c.ctx)
	if err != nil {
		c.logger.Warn("peer discovery failed", "error", err)
		return
	}

	for _, d := range discovery.Relevant(descriptors, c.selfID) {
		if _, registered := c.registry.Lookup(d.ID); registered {
			continue
		}

		info, ok := c.runtime.Participant(d.ID)
		if !ok {
			continue
		}
		if info.Active {
			c.registerExported(d.ID, d.Name, c.runtime.Exported(d.ID))
			continue
		}
		if !activateInactive {
			continue
		}

		peer := d
		go func() {
			exported, err := c.runtime.Activate(c.ctx, peer.ID)
			if err != nil {
				c.logger.Warn("peer activation failed", "peer", peer.ID, "error", err)
				return
			}
			c.registerExported(peer.ID, peer.Name, exported)
		}()
	}
}

func (c *Coordinator) refresh() {
	c.discover(false)
}

// registerExported registers a peer's exported capability. Peers exporting
// nothing, or something that is not a Capability, are skipped — an older or
// unrelated peer must never register as the undefined owner of everything.
func (c *Coordinator) registerExported(id, name string, exported any) {
	capability, ok := exported.(Capability)
	if !ok {
		c.logger.Debug("peer exports no ownership capability", "peer", id)
		return
	}
	if _, registered := c.registry.Lookup(id); registered {
		return
	}

	c.registry.Register(PeerEntry{ID: id, Name: name, Capability: capability})
	c.watch(capability.OwnershipChanged(), c.recompute)
	c.tracer.PeerRegistered(id, name)
	c.logger.Info("coordination peer registered", "peer", id, "name", name)

	// A newly registered peer may already own the focused resource.
	c.recompute()
}

// recompute is one projection pass: derive the owned-by-other flag for the
// focused resource, push it to the context store, and repair double
// ownership by yielding our own claim. Passes serialize so race resolution
// reads the same snapshot the projection used; each pass is idempotent and
// passes are never coalesced.
func (c *Coordinator) recompute() {
	c.recomputeMu.Lock()
	defer c.recomputeMu.Unlock()

	projection := Projection{ContextKey: c.contextKey, At: time.Now()}

	focused, ok := c.runtime.ActiveResource()
	if !ok {
		// Nothing focused: nothing to hide for, peers irrelevant.
		c.pushContext(false)
		c.tracer.ProjectionComputed(projection)
		c.observers.Emit()
		return
	}

	canonical := CanonicalURI(focused)
	projection.FocusedURI = canonical

	for _, peer := range c.registry.All() {
		if peer.Capability.OwnsURI(canonical) {
			projection.OwnedByOther = true
			projection.OwningPeer = peer.ID
			break
		}
	}

	c.pushContext(projection.OwnedByOther)

	projection.OwnedBySelf = c.api.OwnsURI(canonical)

	if projection.OwnedByOther && projection.OwnedBySelf {
		c.initMu.Lock()
		release := c.release
		c.initMu.Unlock()

		if release != nil {
			// Both sides claim the resource. Yield unilaterally: releasing
			// drops our OwnsURI to false, which terminates the rule — the
			// surviving peer sees single ownership on its next pass. No
			// priority, no negotiation; convergence to at most one owner is
			// the only guarantee.
			c.logger.Info("double ownership detected, yielding claim",
				"uri", canonical,
				"peer", projection.OwningPeer,
			)
			c.tracer.ReleaseRequested(canonical)
			c.effects.enqueue(func(ctx context.Context) {
				if err := release(ctx, canonical); err != nil {
					c.logger.Warn("release failed", "uri", canonical, "error", err)
				}
			})
		}
	}

	c.tracer.ProjectionComputed(projection)
	c.observers.Emit()
}

// pushContext queues the fire-and-forget context-store write.
func (c *Coordinator) pushContext(value bool) {
	key := c.contextKey
	c.effects.enqueue(func(ctx context.Context) {
		if err := c.runtime.SetContext(ctx, key, value); err != nil {
			c.logger.Debug("context push failed", "key", key, "error", err)
		}
	})
}
