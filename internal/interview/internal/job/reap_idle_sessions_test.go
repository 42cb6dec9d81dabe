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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type reaper struct {
	idle time.Duration
	cnt  int
}

func (r *reaper) ReapIdle(_ context.Context, idle time.Duration) int {
	r.idle = idle
	return r.cnt
}

func TestReapIdleSessionsJob(t *testing.T) {
	r := &reaper{cnt: 3}
	job := NewReapIdleSessionsJob(r, 30*time.Minute)
	assert.Equal(t, "ReapIdleSessionsJob", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 30*time.Minute, r.idle)
}
