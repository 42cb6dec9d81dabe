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

package mqx

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

// GeneralConsumer 从固定的 topic 读取 JSON 事件
type GeneralConsumer[T any] struct {
	consumer mq.Consumer
	topic    string
}

func NewGeneralConsumer[T any](q mq.MQ, topic, group string) (*GeneralConsumer[T], error) {
	c, err := q.Consumer(topic, group)
	if err != nil {
		return nil, fmt.Errorf("创建 topic=%s group=%s 的消费者失败: %w", topic, group, err)
	}
	return &GeneralConsumer[T]{
		consumer: c,
		topic:    topic,
	}, nil
}

// Consume 阻塞直到拿到一条消息，反序列化之后交给 fn
func (c *GeneralConsumer[T]) Consume(ctx context.Context, fn func(ctx context.Context, evt T) error) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("从topic=%s获取消息失败: %w", c.topic, err)
	}
	var evt T
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析topic=%s的消息失败 offset=%d: %w", c.topic, msg.Offset, err)
	}
	return fn(ctx, evt)
}

func (c *GeneralConsumer[T]) Close() error {
	return c.consumer.Close()
}
