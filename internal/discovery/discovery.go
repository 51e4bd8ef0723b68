// SPDX-License-Identifier: MPL-2.0

// Package discovery finds experiment files and turns them into collected
// experiments.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"perfrun-cli/internal/config"
	"perfrun-cli/internal/session"
	"perfrun-cli/pkg/perffile"
)

// candidatePattern decides whether a shell file is worth collecting at all:
// it must mention a perf-tagged identifier somewhere. Files that fail to
// parse later still collect as zero experiments.
var candidatePattern = regexp.MustCompile(`(\b|_)perf(\b|_)`)

// Discovery finds experiment files using the configured search locations.
type Discovery struct {
	cfg *config.Config
}

// New creates a Discovery over the given configuration.
func New(cfg *config.Config) *Discovery {
	return &Discovery{cfg: cfg}
}

// DiscoverAll returns every candidate experiment file from the current
// directory and the configured search paths, in walk order. Unreadable
// directories and files are skipped.
func (d *Discovery) DiscoverAll() []string {
	dirs := append([]string{"."}, d.cfg.SearchPaths...)
	var files []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		for _, f := range discoverInDir(dir) {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

// discoverInDir walks one directory tree for candidate files.
func discoverInDir(dir string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if entry.IsDir() {
			return nil
		}
		if IsCandidate(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// IsCandidate reports whether the file looks like an experiment file:
// either the ".perf.sh" naming convention, or any ".sh" file whose content
// mentions a perf-tagged word.
func IsCandidate(path string) bool {
	name := filepath.Base(path)
	if strings.HasSuffix(name, ".perf.sh") {
		return true
	}
	if !strings.HasSuffix(name, ".sh") {
		return false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return candidatePattern.Match(content)
}

// Collect loads the file's perf-tagged functions, builds one specification
// per function merged with the configured target/baseline, and creates one
// Experiment per specification in the session.
//
// A module that cannot be loaded yields zero experiments and no error. A
// function whose specification cannot be built contributes an error but
// never prevents collection of its siblings.
func (d *Discovery) Collect(s *session.Session, path string) ([]*session.Experiment, error) {
	var experiments []*session.Experiment
	var errs []error
	for _, f := range perffile.FuncsFromName(path) {
		spec, err := perffile.SpecFromFunc(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		spec[perffile.KeyTarget] = d.cfg.Target
		spec[perffile.KeyBaseline] = d.cfg.Baseline

		name := fmt.Sprintf("%s:%s", filepath.Base(path), spec.String(perffile.KeyName))
		experiments = append(experiments, session.NewExperiment(name, spec, s))
	}
	return experiments, errors.Join(errs...)
}
