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

package testioc

import (
	"context"
	"sync"

	"github.com/ecodeclub/aiinterview/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
)

var (
	q          mq.MQ
	mqInitOnce sync.Once
)

// testTopics 和 config/local.yaml 里面的 kafka.topics 保持一致
var testTopics = map[string]int{
	"interview_completed_events": 1,
}

// InitMQ 测试用内存实现，外面同样套上链路追踪
func InitMQ() mq.MQ {
	mqInitOnce.Do(func() {
		qq := memory.NewMQ()
		for name, partitions := range testTopics {
			err := qq.CreateTopic(context.Background(), name, partitions)
			if err != nil {
				panic(err)
			}
		}
		q = mqx.NewTraceMQ(qq)
	})
	return q
}
