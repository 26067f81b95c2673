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

package extract

import (
	"bytes"
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/aidlc/pkg/catalog"
	"github.com/walteh/aidlc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures an Extractor
type Options struct {
	// Files performs the file system operations, required
	Files status.FileManager
	// Reporter receives every written file, defaults to a tracker without printer
	Reporter status.StatusReporter
	// Exclude holds doublestar patterns matched against catalog paths
	Exclude []string
}

// 📦 Request describes a single extraction
type Request struct {
	// Source is the catalog directory to reproduce
	Source *catalog.Dir
	// DestinationRoot is joined with every stripped catalog path
	DestinationRoot string
	// StripPrefix is removed from the start of every catalog path it prefixes
	StripPrefix string
	// Provider labels reported files
	Provider string
}

// 🏗️ Extractor recreates catalog directories on disk
type Extractor struct {
	files    status.FileManager
	reporter status.StatusReporter
	exclude  []string
	dryRun   bool
}

// 🏭 New creates a new extractor with the given options
func New(opts Options) (*Extractor, error) {
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = status.NewTracker(nil)
	}

	ex := &Extractor{
		files:    opts.Files,
		reporter: reporter,
		exclude:  opts.Exclude,
	}
	if d, ok := opts.Files.(interface{ IsDryRun() bool }); ok {
		ex.dryRun = d.IsDryRun()
	}

	return ex, nil
}

// 🏃 Extract reproduces req.Source under req.DestinationRoot.
//
// Any failure to create a directory or write a file aborts the extraction,
// whatever was written before the failure stays on disk.
func (e *Extractor) Extract(ctx context.Context, req Request) error {
	if req.Source == nil {
		return errors.Errorf("source directory is required")
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", req.Source.Path()).
		Str("destination", req.DestinationRoot).
		Str("strip_prefix", req.StripPrefix).
		Msg("extracting directory")

	return e.extractDir(ctx, req, req.Source)
}

func (e *Extractor) extractDir(ctx context.Context, req Request, dir *catalog.Dir) error {
	target := e.targetPath(req, dir.Path())
	if err := e.files.MkdirAll(ctx, target); err != nil {
		return errors.Errorf("creating directory %s: %w", target, err)
	}

	for _, entry := range dir.Entries() {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("extracting %s: %w", dir.Path(), err)
		}

		if e.excluded(ctx, entry.Path()) {
			continue
		}

		switch entry := entry.(type) {
		case *catalog.Dir:
			if err := e.extractDir(ctx, req, entry); err != nil {
				return err
			}
		case *catalog.File:
			if err := e.extractFile(ctx, req, entry); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Extractor) extractFile(ctx context.Context, req Request, file *catalog.File) error {
	rel := StripPrefix(file.Path(), req.StripPrefix)
	target := filepath.Join(req.DestinationRoot, filepath.FromSlash(rel))
	content := file.Contents()

	fileStatus := status.StatusNew
	if existing, err := e.files.ReadFile(ctx, target); err == nil {
		if bytes.Equal(existing, content) {
			fileStatus = status.StatusUnchanged
		} else {
			fileStatus = status.StatusModified
		}
	}

	parent := filepath.Dir(target)
	if err := e.files.MkdirAll(ctx, parent); err != nil {
		return errors.Errorf("creating parent directory %s: %w", parent, err)
	}

	if err := e.files.WriteFile(ctx, target, content); err != nil {
		return errors.Errorf("writing file %s: %w", target, err)
	}

	e.reporter.TrackFile(ctx, status.FileInfo{
		Path:     filepath.FromSlash(rel),
		Target:   target,
		Provider: req.Provider,
		Status:   fileStatus,
		Size:     int64(len(content)),
		Checksum: status.Checksum(content),
		DryRun:   e.dryRun,
	})

	return nil
}

func (e *Extractor) targetPath(req Request, catalogPath string) string {
	return filepath.Join(req.DestinationRoot, filepath.FromSlash(StripPrefix(catalogPath, req.StripPrefix)))
}

// 🔍 excluded checks if a catalog path matches one of the exclude patterns
func (e *Extractor) excluded(ctx context.Context, p string) bool {
	for _, pattern := range e.exclude {
		// patterns were validated in New
		if doublestar.MatchUnvalidated(pattern, p) {
			zerolog.Ctx(ctx).Debug().Str("path", p).Str("pattern", pattern).Msg("entry excluded by pattern")
			return true
		}
	}
	return false
}

// ✂️ StripPrefix removes prefix from the start of the slash separated path p,
// comparing whole segments. When prefix does not lead p, p is returned unchanged.
func StripPrefix(p, prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || prefix == "." {
		return p
	}
	prefix = path.Clean(prefix)

	if p == prefix {
		return ""
	}
	if rest, ok := strings.CutPrefix(p, prefix+"/"); ok {
		return rest
	}
	return p
}
