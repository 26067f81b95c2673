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

// Package templates bundles the provider template directories into the binary.
//
// Every top-level directory under embedded/ is a provider. A provider that
// supports hidden mode carries a directory named after itself with a leading
// dot, e.g. embedded/claude/.claude/.
package templates

import (
	"embed"
	"io/fs"

	"gitlab.com/tozd/go/errors"
)

// Root is the directory inside the embedded filesystem that holds the providers.
const Root = "embedded"

// the all: prefix is required, hidden provider directories are skipped otherwise
//
//go:embed all:embedded
var embedded embed.FS

// 📦 FS returns the provider templates rooted at Root.
func FS() (fs.FS, error) {
	sub, err := fs.Sub(embedded, Root)
	if err != nil {
		return nil, errors.Errorf("opening embedded templates: %w", err)
	}
	return sub, nil
}
