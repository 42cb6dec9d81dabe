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

package event

import (
	"context"
	"strconv"

	"github.com/ecodeclub/aiinterview/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
)

const CompletedTopic = "interview_completed_events"

// CompletedEvent 一场面试结束并写入历史记录之后发出
type CompletedEvent struct {
	Uid            int64  `json:"uid"`
	HistoryID      int64  `json:"historyId"`
	Company        string `json:"company"`
	FitScore       int    `json:"fitScore"`
	Recommendation string `json:"recommendation"`
}

//go:generate mockgen -source=./types.go -destination=./mocks/producer.mock.go -package=evtmocks
type CompletedEventProducer interface {
	Produce(ctx context.Context, evt CompletedEvent) error
}

func NewCompletedEventProducer(q mq.MQ) (CompletedEventProducer, error) {
	p, err := mqx.NewGeneralProducer[CompletedEvent](q, CompletedTopic,
		mqx.WithKey(func(evt CompletedEvent) string {
			return strconv.FormatInt(evt.Uid, 10)
		}))
	if err != nil {
		return nil, err
	}
	return p, nil
}
