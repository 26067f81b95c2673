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

package catalog

import (
	"io/fs"
	"path"
	"sync"

	"github.com/walteh/aidlc/pkg/templates"
	"gitlab.com/tozd/go/errors"
)

// 🌳 Entry is a node of the catalog tree, either a *Dir or a *File.
type Entry interface {
	// Path is slash separated and relative to the catalog root
	Path() string
	// Name is the final path segment
	Name() string
	IsDir() bool
}

// 📂 Dir is an immutable directory of the catalog.
type Dir struct {
	path    string
	entries []Entry
}

func (d *Dir) Path() string { return d.path }
func (d *Dir) Name() string { return path.Base(d.path) }
func (d *Dir) IsDir() bool  { return true }

// Entries returns the immediate children in catalog order.
func (d *Dir) Entries() []Entry {
	return d.entries
}

// Dirs returns the immediate child directories in catalog order.
func (d *Dir) Dirs() []*Dir {
	dirs := make([]*Dir, 0, len(d.entries))
	for _, e := range d.entries {
		if sub, ok := e.(*Dir); ok {
			dirs = append(dirs, sub)
		}
	}
	return dirs
}

// Files returns the immediate child files in catalog order.
func (d *Dir) Files() []*File {
	files := make([]*File, 0, len(d.entries))
	for _, e := range d.entries {
		if f, ok := e.(*File); ok {
			files = append(files, f)
		}
	}
	return files
}

// 🚶 Walk visits every entry below d depth first, in catalog order. d itself is not visited.
func (d *Dir) Walk(fn func(Entry) error) error {
	for _, e := range d.entries {
		if err := fn(e); err != nil {
			return err
		}
		if sub, ok := e.(*Dir); ok {
			if err := sub.Walk(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// 📄 File is an immutable file of the catalog.
type File struct {
	path     string
	contents []byte
}

func (f *File) Path() string { return f.path }
func (f *File) Name() string { return path.Base(f.path) }
func (f *File) IsDir() bool  { return false }

// Contents returns the embedded bytes. The slice is shared and must not be modified.
func (f *File) Contents() []byte {
	return f.contents
}

// 📚 Catalog is the read-only tree of provider templates.
type Catalog struct {
	root *Dir
	dirs map[string]*Dir
}

// 🏭 New reads fsys once and builds the catalog from it.
func New(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{dirs: make(map[string]*Dir)}

	root, err := c.build(fsys, ".")
	if err != nil {
		return nil, err
	}
	c.root = root

	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	fsys, err := templates.FS()
	if err != nil {
		return nil, err
	}
	return New(fsys)
})

// 🎯 Default returns the catalog of the templates bundled into the binary.
func Default() (*Catalog, error) {
	cat, err := defaultCatalog()
	if err != nil {
		return nil, errors.Errorf("loading bundled templates: %w", err)
	}
	return cat, nil
}

func (c *Catalog) build(fsys fs.FS, name string) (*Dir, error) {
	entries, err := fs.ReadDir(fsys, name)
	if err != nil {
		return nil, errors.Errorf("reading directory %s: %w", name, err)
	}

	dir := &Dir{path: relative(name), entries: make([]Entry, 0, len(entries))}
	for _, entry := range entries {
		child := path.Join(name, entry.Name())
		if entry.IsDir() {
			sub, err := c.build(fsys, child)
			if err != nil {
				return nil, err
			}
			dir.entries = append(dir.entries, sub)
			continue
		}

		data, err := fs.ReadFile(fsys, child)
		if err != nil {
			return nil, errors.Errorf("reading file %s: %w", child, err)
		}
		dir.entries = append(dir.entries, &File{path: child, contents: data})
	}

	c.dirs[dir.path] = dir
	return dir, nil
}

func relative(name string) string {
	if name == "." {
		return ""
	}
	return name
}

// Root returns the unnamed top of the tree.
func (c *Catalog) Root() *Dir {
	return c.root
}

// 📋 ListTopLevelNames returns the path of every top-level directory in catalog order.
func (c *Catalog) ListTopLevelNames() []string {
	dirs := c.root.Dirs()
	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, d.Path())
	}
	return names
}

// 🔍 GetDirectory looks a directory up by its exact relative path.
// The empty name never matches, so a provider can not resolve to the whole catalog.
func (c *Catalog) GetDirectory(name string) (*Dir, bool) {
	if name == "" {
		return nil, false
	}
	d, ok := c.dirs[name]
	return d, ok
}

// 🔎 FindChildDirectory searches the immediate children of dir for a directory
// whose final segment is exactly name.
func (c *Catalog) FindChildDirectory(dir *Dir, name string) (*Dir, bool) {
	if dir == nil {
		return nil, false
	}
	for _, sub := range dir.Dirs() {
		if sub.Name() == name {
			return sub, true
		}
	}
	return nil, false
}
