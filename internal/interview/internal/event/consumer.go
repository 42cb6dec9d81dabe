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
	"errors"
	"fmt"

	"github.com/ecodeclub/aiinterview/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// StatsRefresher 重新计算用户的统计数据
type StatsRefresher interface {
	RefreshStats(ctx context.Context, uid int64) error
}

// StatsConsumer 面试结束之后刷新用户的统计缓存
type StatsConsumer struct {
	refresher StatsRefresher
	consumer  *mqx.GeneralConsumer[CompletedEvent]
	logger    *elog.Component
}

func NewStatsConsumer(refresher StatsRefresher, q mq.MQ) (*StatsConsumer, error) {
	const groupID = "interview_stats"
	consumer, err := mqx.NewGeneralConsumer[CompletedEvent](q, CompletedTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &StatsConsumer{
		refresher: refresher,
		consumer:  consumer,
		logger:    elog.DefaultLogger,
	}, nil
}

func (c *StatsConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, func(ctx context.Context, evt CompletedEvent) error {
		err := c.refresher.RefreshStats(ctx, evt.Uid)
		if err != nil {
			return fmt.Errorf("刷新统计数据失败 uid=%d: %w", evt.Uid, err)
		}
		return nil
	})
}

func (c *StatsConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				c.logger.Error("消费面试结束事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *StatsConsumer) Stop(_ context.Context) error {
	return c.consumer.Close()
}
