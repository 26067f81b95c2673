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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/aidlc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what writing a file did to the destination
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File didn't exist in destination
	StatusModified             // File existed but content differed
	StatusUnchanged            // File existed and content matched
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 📄 FileInfo describes one file produced by an extraction
type FileInfo struct {
	Path     string     // Path relative to the destination root
	Target   string     // Full destination path
	Provider string     // Provider the file belongs to
	Status   FileStatus // What the write did
	Size     int64      // File size in bytes
	Checksum string     // SHA-256 of the written content
	DryRun   bool       // Whether the write was skipped
}

// 💾 FileManager handles the file system side of an extraction
type FileManager interface {
	// MkdirAll creates path and any missing parents, existing directories are not an error
	MkdirAll(ctx context.Context, path string) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile replaces any existing file at path
	WriteFile(ctx context.Context, path string, content []byte) error
}

// 📈 StatusReporter tracks the files written during a run
type StatusReporter interface {
	TrackFile(ctx context.Context, info FileInfo)
	ListFiles(ctx context.Context) []FileInfo
}

// Checksum returns the hex SHA-256 of content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// 🔧 DiskManager implements FileManager on the real file system
type DiskManager struct {
	DirMode  os.FileMode
	FileMode os.FileMode
}

// 🏭 NewDiskManager creates a manager writing 0755 directories and 0644 files
func NewDiskManager() *DiskManager {
	return &DiskManager{DirMode: 0o755, FileMode: 0o644}
}

func (m *DiskManager) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, m.DirMode); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (m *DiskManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return content, nil
}

// WriteFile replaces the contents of path. Symlinks are followed and an existing
// file keeps its mode, FileMode only applies to new files.
func (m *DiskManager) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := os.WriteFile(path, content, m.FileMode); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// 🧪 DryRunManager reads from disk but records writes instead of performing them
type DryRunManager struct {
	mu    sync.Mutex
	dirs  map[string]struct{}
	files map[string]int
}

// 🏭 NewDryRunManager creates an empty dry run manager
func NewDryRunManager() *DryRunManager {
	return &DryRunManager{
		dirs:  make(map[string]struct{}),
		files: make(map[string]int),
	}
}

func (m *DryRunManager) MkdirAll(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = struct{}{}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("dry run: would create directory")
	return nil
}

func (m *DryRunManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return content, nil
}

func (m *DryRunManager) WriteFile(ctx context.Context, path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = len(content)
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("size", len(content)).Msg("dry run: would write file")
	return nil
}

// IsDryRun reports that nothing is written
func (m *DryRunManager) IsDryRun() bool {
	return true
}

// PlannedDirs returns the directories that would have been created, sorted
func (m *DryRunManager) PlannedDirs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.dirs)
}

// PlannedFiles returns the files that would have been written, sorted
func (m *DryRunManager) PlannedFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.files)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// 🖨️ Printer receives every tracked file for display
type Printer interface {
	LogFileOperation(ctx context.Context, op log.FileOperation)
}

// 🔧 Tracker implements StatusReporter
type Tracker struct {
	printer   Printer
	formatter FileFormatter

	mu    sync.Mutex
	files []FileInfo
}

// 🏭 NewTracker creates a tracker. printer may be nil.
func NewTracker(printer Printer) *Tracker {
	return &Tracker{
		printer:   printer,
		formatter: NewDefaultFileFormatter(),
	}
}

func (t *Tracker) TrackFile(ctx context.Context, info FileInfo) {
	t.mu.Lock()
	t.files = append(t.files, info)
	t.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Str("path", info.Target).
		Str("provider", info.Provider).
		Str("status", info.Status.String()).
		Int64("size", info.Size).
		Str("checksum", info.Checksum).
		Msg(t.formatter.FormatFileOperation(info))

	if t.printer != nil {
		t.printer.LogFileOperation(ctx, log.FileOperation{
			Path:       info.Path,
			Provider:   info.Provider,
			IsNew:      info.Status == StatusNew,
			IsModified: info.Status == StatusModified,
			DryRun:     info.DryRun,
		})
	}
}

// ListFiles returns the tracked files in the order they were written
func (t *Tracker) ListFiles(ctx context.Context) []FileInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	files := make([]FileInfo, len(t.files))
	copy(files, t.files)
	return files
}

// Counts returns the number of tracked files per status
func (t *Tracker) Counts() map[FileStatus]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[FileStatus]int)
	for _, f := range t.files {
		counts[f.Status]++
	}
	return counts
}

// Summary formats the tracked counts for display
func (t *Tracker) Summary(dryRun bool) string {
	counts := t.Counts()
	return t.formatter.FormatSummary(counts[StatusNew], counts[StatusModified], counts[StatusUnchanged], dryRun)
}
