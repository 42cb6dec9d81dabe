// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package job

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*ReapIdleSessionsJob)(nil)

// Reaper 断开空闲太久的会话
type Reaper interface {
	ReapIdle(ctx context.Context, idle time.Duration) int
}

type ReapIdleSessionsJob struct {
	reaper Reaper
	idle   time.Duration
	logger *elog.Component
}

func NewReapIdleSessionsJob(reaper Reaper, idle time.Duration) *ReapIdleSessionsJob {
	return &ReapIdleSessionsJob{
		reaper: reaper,
		idle:   idle,
		logger: elog.DefaultLogger,
	}
}

func (r *ReapIdleSessionsJob) Name() string {
	return "ReapIdleSessionsJob"
}

func (r *ReapIdleSessionsJob) Run(ctx context.Context) error {
	cnt := r.reaper.ReapIdle(ctx, r.idle)
	if cnt > 0 {
		r.logger.Info("断开空闲会话", elog.Int("count", cnt), elog.String("idle", r.idle.String()))
	}
	return nil
}
