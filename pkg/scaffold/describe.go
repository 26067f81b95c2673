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
	"github.com/walteh/aidlc/pkg/catalog"
)

// 📋 ProviderSummary describes one provider of the catalog
type ProviderSummary struct {
	Name      string `json:"name" yaml:"name"`
	HiddenDir string `json:"hidden_dir,omitempty" yaml:"hidden_dir,omitempty"`
	Files     int    `json:"files" yaml:"files"`
}

// Describe summarizes every top-level provider of the catalog in catalog order
func Describe(cat *catalog.Catalog) []ProviderSummary {
	dirs := cat.Root().Dirs()
	summaries := make([]ProviderSummary, 0, len(dirs))

	for _, dir := range dirs {
		name := dir.Name()
		summary := ProviderSummary{Name: name}
		if hidden, ok := cat.FindChildDirectory(dir, HiddenDirName(name)); ok {
			summary.HiddenDir = hidden.Path()
		}

		_ = dir.Walk(func(e catalog.Entry) error {
			if !e.IsDir() {
				summary.Files++
			}
			return nil
		})

		summaries = append(summaries, summary)
	}

	return summaries
}
