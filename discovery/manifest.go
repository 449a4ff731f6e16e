// ABOUTME: TOML manifest directory scanner for participant discovery.
// ABOUTME: Malformed or unrelated manifests are skipped, never fatal.

package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifestFile is the on-disk shape of a participant manifest. Coordination
// support is declared under the namespaced [urimux] table:
//
//	id = "sqltools.backup"
//	name = "SQL Backup Tools"
//
//	[urimux]
//	coordinates_with = ["mssql.editor", "*"]
type manifestFile struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	URIMux struct {
		CoordinatesWith []string `toml:"coordinates_with"`
	} `toml:"urimux"`
}

// ManifestProvider discovers participants by scanning a directory of TOML
// manifest files. Hosts that publish participant metadata on disk (and the
// simulator) use this instead of runtime introspection.
type ManifestProvider struct {
	dir    string
	logger *slog.Logger
}

// NewManifestProvider creates a provider scanning dir. Pass nil logger for default.
func NewManifestProvider(dir string, logger *slog.Logger) *ManifestProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManifestProvider{
		dir:    dir,
		logger: logger.With("component", "discovery"),
	}
}

// Discover parses every *.toml file in the directory. Files that fail to
// parse or declare no participant ID are skipped with a warning; a broken
// manifest must never prevent discovery of the rest.
func (p *ManifestProvider) Discover(_ context.Context) ([]Descriptor, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest directory: %w", err)
	}

	var descriptors []Descriptor
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		path := filepath.Join(p.dir, entry.Name())
		var mf manifestFile
		if _, err := toml.DecodeFile(path, &mf); err != nil {
			p.logger.Warn("skipping malformed manifest", "path", path, "error", err)
			continue
		}
		if mf.ID == "" {
			p.logger.Warn("skipping manifest without participant id", "path", path)
			continue
		}

		descriptors = append(descriptors, Descriptor{
			ID:              mf.ID,
			Name:            mf.Name,
			CoordinatesWith: mf.URIMux.CoordinatesWith,
		})
	}
	return descriptors, nil
}
