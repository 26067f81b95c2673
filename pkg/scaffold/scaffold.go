// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scaffold

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/aidlc/pkg/catalog"
	"github.com/walteh/aidlc/pkg/extract"
	"github.com/walteh/aidlc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// DefaultTemplatesDir is the destination, relative to the working directory, of ModeTemplates
const DefaultTemplatesDir = "templates"

// HiddenMarker prefixes a provider name to form its hidden directory name
const HiddenMarker = "."

// 🎛️ Mode selects how a provider directory is laid out on disk
type Mode int

const (
	// ModeHidden extracts the contents of <provider>/.<provider> into the working directory
	ModeHidden Mode = iota
	// ModeTemplates extracts <provider> as a whole under <workdir>/templates
	ModeTemplates
)

func (m Mode) String() string {
	switch m {
	case ModeHidden:
		return "hidden"
	case ModeTemplates:
		return "templates"
	default:
		return "unknown"
	}
}

// ParseMode parses the name of a mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hidden":
		return ModeHidden, nil
	case "templates":
		return ModeTemplates, nil
	default:
		return ModeHidden, errors.Errorf("unknown mode %q, expected hidden or templates", s)
	}
}

// HiddenDirName returns the name of the hidden directory of a provider
func HiddenDirName(provider string) string {
	return HiddenMarker + provider
}

// 🎯 Selection is the set of providers requested by the user
type Selection struct {
	Providers []string
	// All selects every top-level catalog entry and ignores Providers
	All bool
}

// 📋 Resolve turns a selection into the list of provider names to scaffold.
// Explicit names are kept verbatim, including order and duplicates.
func Resolve(cat *catalog.Catalog, sel Selection) []string {
	if sel.All {
		return cat.ListTopLevelNames()
	}
	names := make([]string, len(sel.Providers))
	copy(names, sel.Providers)
	return names
}

// 🔌 Extractor reproduces catalog directories on disk
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Catalog holds the provider templates
	Catalog *catalog.Catalog
	// Extractor writes the templates
	Extractor Extractor
	// WorkDir is the directory the templates are scaffolded into
	WorkDir string
	Mode    Mode
	// Parallel scaffolds providers concurrently
	Parallel bool
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Catalog == nil {
		return nil, errors.Errorf("catalog is required")
	}
	if opts.Extractor == nil {
		return nil, errors.Errorf("extractor is required")
	}
	if opts.WorkDir == "" {
		return nil, errors.Errorf("working directory is required")
	}
	if opts.Mode != ModeHidden && opts.Mode != ModeTemplates {
		return nil, errors.Errorf("unknown mode %d", opts.Mode)
	}

	return &Operator{
		catalog:   opts.Catalog,
		extractor: opts.Extractor,
		workDir:   opts.WorkDir,
		mode:      opts.Mode,
		runner:    NewRunner(opts.Parallel),
	}, nil
}

// 🎮 Operator scaffolds providers from the catalog
type Operator struct {
	catalog   *catalog.Catalog
	extractor Extractor
	workDir   string
	mode      Mode
	runner    *Runner
}

// SkipReason explains why a provider was not scaffolded
type SkipReason string

const (
	ReasonProviderNotFound  SkipReason = "provider not found"
	ReasonHiddenDirNotFound SkipReason = "hidden directory not found"
)

// Skip records a provider that was not scaffolded
type Skip struct {
	Provider string
	Reason   SkipReason
}

// 📊 Result reports the outcome of a run
type Result struct {
	mu         sync.Mutex
	Scaffolded []string
	Skipped    []Skip
}

func (r *Result) scaffolded(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Scaffolded = append(r.Scaffolded, name)
}

func (r *Result) skipped(name string, reason SkipReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped = append(r.Skipped, Skip{Provider: name, Reason: reason})
}

// 🏃 Run scaffolds every provider of the selection.
//
// Providers missing from the catalog, or missing their hidden directory in
// ModeHidden, are skipped with a warning. The first file system failure aborts
// the run and is returned.
func (o *Operator) Run(ctx context.Context, sel Selection) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)
	result := &Result{}

	names := Resolve(o.catalog, sel)
	if len(names) == 0 {
		console.Warning("no providers specified, use --provider or --all")
		return result, nil
	}

	logger.Info().Strs("providers", names).Str("mode", o.mode.String()).Msg("scaffolding templates")

	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		tasks = append(tasks, func(ctx context.Context) error {
			return o.scaffoldProvider(ctx, name, result)
		})
	}

	if err := o.runner.Run(ctx, tasks...); err != nil {
		return result, err
	}

	logger.Info().Int("scaffolded", len(result.Scaffolded)).Int("skipped", len(result.Skipped)).Msg("scaffolding complete")
	return result, nil
}

func (o *Operator) scaffoldProvider(ctx context.Context, name string, result *Result) error {
	console := log.FromContext(ctx)

	providerDir, ok := o.catalog.GetDirectory(name)
	if !ok {
		console.Warningf("provider '%s' not found in embedded templates", name)
		result.skipped(name, ReasonProviderNotFound)
		return nil
	}

	req, ok := o.request(ctx, name, providerDir)
	if !ok {
		console.Warningf("provider '%s' does not contain '%s', skipping", name, HiddenDirName(name))
		result.skipped(name, ReasonHiddenDirNotFound)
		return nil
	}

	console.StartProviderOperation(ctx, log.ProviderOperation{
		Name:        name,
		Mode:        o.mode.String(),
		Source:      req.Source.Path(),
		Destination: req.DestinationRoot,
	})

	if err := o.extractor.Extract(ctx, req); err != nil {
		return errors.Errorf("scaffolding provider %s: %w", name, err)
	}

	console.EndProviderOperation(ctx, name)
	console.Successf("%s: %d files", name, console.FileCount(name))
	result.scaffolded(name)
	return nil
}

// request builds the extraction for a provider, false when ModeHidden finds no hidden directory
func (o *Operator) request(ctx context.Context, name string, providerDir *catalog.Dir) (extract.Request, bool) {
	if o.mode == ModeTemplates {
		return extract.Request{
			Source:          providerDir,
			DestinationRoot: filepath.Join(o.workDir, DefaultTemplatesDir),
			Provider:        name,
		}, true
	}

	for _, dir := range providerDir.Dirs() {
		zerolog.Ctx(ctx).Debug().Str("path", dir.Path()).Msg("provider subdir detected")
	}

	hidden, ok := o.catalog.FindChildDirectory(providerDir, HiddenDirName(name))
	if !ok {
		return extract.Request{}, false
	}

	// the hidden directory becomes the root of the extracted tree
	return extract.Request{
		Source:          hidden,
		DestinationRoot: o.workDir,
		StripPrefix:     hidden.Path(),
		Provider:        name,
	}, true
}
