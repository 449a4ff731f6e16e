// ABOUTME: Ownership race simulator — two participants claim the same URI and converge.
// ABOUTME: Usage: urimux-sim [-config config.yaml] [-uri file:///demo/query.sql] [-manifests dir]

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/2389/urimux/discovery"
	"github.com/2389/urimux/events"
	"github.com/2389/urimux/host"
	"github.com/2389/urimux/internal/config"
	"github.com/2389/urimux/internal/journal"
	"github.com/2389/urimux/ownership"
)

const (
	alphaID = "sim.alpha"
	betaID  = "sim.beta"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	uri := flag.String("uri", "file:///demo/query.sql", "contested resource URI")
	manifestDir := flag.String("manifests", "", "write TOML manifests here and discover through them")
	flag.Parse()

	if err := run(*configPath, *uri, *manifestDir); err != nil {
		log.Fatal(err)
	}
}

// claimant is one simulated participant side: an owned-URI set with a change
// signal, wired into a coordinator as its callbacks.
type claimant struct {
	mu      sync.Mutex
	owned   map[string]bool
	changed *events.Signal
}

func newClaimant(uris ...string) *claimant {
	c := &claimant{owned: make(map[string]bool), changed: events.NewSignal()}
	for _, u := range uris {
		c.owned[ownership.CanonicalURI(u)] = true
	}
	return c
}

func (c *claimant) owns(uri string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owned[uri]
}

func (c *claimant) release(_ context.Context, uri string) error {
	c.mu.Lock()
	c.owned[uri] = false
	c.mu.Unlock()
	c.changed.Emit()
	return nil
}

func run(configPath, uri, manifestDir string) error {
	cfg := &config.Config{}
	cfg.Sim.SettleTimeout = 2 * time.Second
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	logger := config.SetupLogger(cfg.Logging)

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	rt := host.NewMemRuntime(logger)
	canonical := ownership.CanonicalURI(uri)

	var provider discovery.Provider
	if manifestDir != "" {
		if err := writeManifests(manifestDir); err != nil {
			return err
		}
		provider = discovery.NewManifestProvider(manifestDir, logger)
		gray.Printf("discovering through manifests in %s\n", manifestDir)
	}

	var tracer ownership.Tracer
	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer j.Close()
		tracer = j
		gray.Printf("journaling to %s\n", cfg.Journal.Path)
	}

	// Beta claims the URI and never yields — it models the participant that
	// attached first, or one that simply has no release hook.
	betaSelf := newClaimant(uri)
	beta := ownership.New(rt, ownership.Options{
		SelfID:           betaID,
		HideUIContextKey: "beta.hideUi",
		Provider:         provider,
		Logger:           logger,
		Callbacks: &ownership.Callbacks{
			OwnsURI:          betaSelf.owns,
			OwnershipChanged: betaSelf.changed,
		},
	})
	defer beta.Close()
	rt.AddParticipant(&host.Participant{
		ID:       betaID,
		Name:     "Simulated Beta",
		Active:   true,
		Manifest: host.Manifest{CoordinatesWith: []string{discovery.Wildcard}},
		Exported: beta.API(),
	})

	// Alpha also claims the URI, but yields on double ownership.
	alphaSelf := newClaimant(uri)
	alpha := ownership.New(rt, ownership.Options{
		SelfID:           alphaID,
		HideUIContextKey: "alpha.hideUi",
		Provider:         provider,
		Tracer:           tracer,
		Logger:           logger,
		Callbacks: &ownership.Callbacks{
			OwnsURI:          alphaSelf.owns,
			OwnershipChanged: alphaSelf.changed,
			ReleaseURI:       alphaSelf.release,
		},
	})
	defer alpha.Close()
	rt.AddParticipant(&host.Participant{
		ID:       alphaID,
		Name:     "Simulated Alpha",
		Active:   true,
		Manifest: host.Manifest{CoordinatesWith: []string{discovery.Wildcard}},
		Exported: alpha.API(),
	})

	cyan.Printf("both participants claim %s\n", canonical)
	fmt.Printf("  alpha owns: %v, beta owns: %v\n", alphaSelf.owns(canonical), betaSelf.owns(canonical))

	rt.SetActiveResource(uri)
	yellow.Println("focused the contested resource; waiting for convergence...")

	deadline := time.Now().Add(cfg.Sim.SettleTimeout)
	for alphaSelf.owns(canonical) && betaSelf.owns(canonical) {
		if time.Now().After(deadline) {
			return fmt.Errorf("no convergence within %s", cfg.Sim.SettleTimeout)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Let the trailing context pushes land before reading the store.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := alpha.Flush(ctx); err != nil {
		return err
	}
	if err := beta.Flush(ctx); err != nil {
		return err
	}

	green.Println("converged to a single owner")
	fmt.Printf("  alpha owns: %v, beta owns: %v\n", alphaSelf.owns(canonical), betaSelf.owns(canonical))
	printFlag(rt, "alpha.hideUi")
	printFlag(rt, "beta.hideUi")

	if owner, ok := alpha.OwningCoordinatingExtension(uri); ok {
		gray.Printf("alpha sees owner: %s\n", owner)
	}
	return nil
}

func printFlag(rt *host.MemRuntime, key string) {
	v, ok := rt.ContextValue(key)
	fmt.Printf("  context %s = %v (written: %v)\n", key, v, ok)
}

func writeManifests(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	manifests := map[string]string{
		"alpha.toml": manifestTOML(alphaID, "Simulated Alpha"),
		"beta.toml":  manifestTOML(betaID, "Simulated Beta"),
	}
	for name, content := range manifests {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("writing manifest %s: %w", name, err)
		}
	}
	return nil
}

func manifestTOML(id, name string) string {
	return fmt.Sprintf("id = %q\nname = %q\n\n[urimux]\ncoordinates_with = [\"*\"]\n", id, name)
}
