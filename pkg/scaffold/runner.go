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

	"golang.org/x/sync/errgroup"
)

// 🏃 Task is one unit of work handed to a Runner
type Task func(ctx context.Context) error

// 🏃 Runner executes tasks one after another or concurrently
type Runner struct {
	parallel bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(parallel bool) *Runner {
	return &Runner{parallel: parallel}
}

// 🏃 Run executes every task and returns the first error
func (r *Runner) Run(ctx context.Context, tasks ...Task) error {
	if r.parallel {
		return r.runAsync(ctx, tasks)
	}
	return r.runSync(ctx, tasks)
}

// 🔄 runSync stops at the first failing task
func (r *Runner) runSync(ctx context.Context, tasks []Task) error {
	for _, task := range tasks {
		if err := task(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ runAsync cancels the remaining tasks once one fails
func (r *Runner) runAsync(ctx context.Context, tasks []Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			return task(gctx)
		})
	}
	return g.Wait()
}
