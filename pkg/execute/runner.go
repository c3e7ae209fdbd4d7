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

package execute

import (
	"context"

	"github.com/walteh/driveops/pkg/plan"
	"golang.org/x/sync/errgroup"
)

// 🏃 BatchRunner executes independent plans, optionally in parallel. Each
// plan's own execution stays synchronous; only whole pipelines fan out.
type BatchRunner struct {
	executor *Executor
	async    bool
}

// NewBatchRunner creates a batch runner
func NewBatchRunner(executor *Executor, async bool) *BatchRunner {
	return &BatchRunner{executor: executor, async: async}
}

// Run executes every plan and returns the outcomes in plan order. Failed
// outcomes are reported in place; Run itself errors only on a cancelled
// context.
func (r *BatchRunner) Run(ctx context.Context, plans []plan.Plan) ([]Outcome, error) {
	outcomes := make([]Outcome, len(plans))

	if !r.async {
		for i, p := range plans {
			if err := ctx.Err(); err != nil {
				return outcomes, err
			}
			outcomes[i] = r.executor.Execute(ctx, p)
		}
		return outcomes, nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	for i, p := range plans {
		i, p := i, p
		g.Go(func() error {
			outcomes[i] = r.executor.Execute(groupCtx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}
