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

package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	"github.com/ecodeclub/ekit/syncx"
	"github.com/gotomicro/ego/core/elog"
)

const (
	defaultCallTimeout = 30 * time.Second
	defaultMailboxSize = 16
)

// Orchestrator 管理所有的面试会话。
// 不同会话之间互不影响，同一个会话的消息按照到达顺序串行处理
type Orchestrator struct {
	cfg      Config
	sessions syncx.Map[string, *session]
	node     *snowflake.Node

	evaluator   Evaluator
	dialogue    engine.Dialogue
	writer      engine.ReportWriter
	extractor   Extractor
	transcriber Transcriber
	synthesizer Synthesizer
	history     HistoryStore
	// 可选，额外导出一份报告
	exporter engine.ReportWriter

	logger *elog.Component
}

type Option func(o *Orchestrator)

// WithExporter 额外导出报告，例如 docx
func WithExporter(exporter engine.ReportWriter) Option {
	return func(o *Orchestrator) {
		o.exporter = exporter
	}
}

func NewOrchestrator(cfg Config,
	node *snowflake.Node,
	evaluator Evaluator,
	dialogue engine.Dialogue,
	writer engine.ReportWriter,
	extractor Extractor,
	transcriber Transcriber,
	synthesizer Synthesizer,
	history HistoryStore,
	opts ...Option) *Orchestrator {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.MailboxSize <= 0 {
		cfg.MailboxSize = defaultMailboxSize
	}
	if cfg.DefaultQuestions < domain.MinQuestionCount || cfg.DefaultQuestions > domain.MaxQuestionCount {
		cfg.DefaultQuestions = 5
	}
	o := &Orchestrator{
		cfg:         cfg,
		node:        node,
		evaluator:   evaluator,
		dialogue:    dialogue,
		writer:      writer,
		extractor:   extractor,
		transcriber: transcriber,
		synthesizer: synthesizer,
		history:     history,
		logger:      elog.DefaultLogger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Connect 创建一个新的会话，返回会话的 key 和欢迎语
func (o *Orchestrator) Connect(_ context.Context, uid int64) (string, Reply, error) {
	key := o.node.Generate().String()
	s := newSession(o, key, uid)
	reply := Reply{
		Stage:    s.stage,
		Messages: o.greeting(),
	}
	o.sessions.Store(key, s)
	go s.run()
	activeSessions.Inc()
	o.logger.Info("创建面试会话", elog.Int64("uid", uid), elog.String("session", key))
	return key, reply, nil
}

// Dispatch 把消息交给会话处理并等待结果。
// Restart 会立刻让正在进行的外部调用失效，不需要等待它返回
func (o *Orchestrator) Dispatch(ctx context.Context, key string, uid int64, msg domain.Inbound) (Reply, error) {
	s, err := o.find(key, uid)
	if err != nil {
		return Reply{}, err
	}
	if msg == nil {
		return Reply{}, fmt.Errorf("%w: 消息不能为空", domain.ErrInput)
	}
	s.touch()
	var gen uint64
	if _, ok := msg.(domain.Restart); ok {
		gen = s.bump()
	} else {
		gen = s.currentGen()
	}
	res, err := o.send(ctx, s, envelope{gen: gen, ctx: ctx, msg: msg})
	return res.reply, err
}

// Snapshot 当前会话的只读视图
func (o *Orchestrator) Snapshot(ctx context.Context, key string, uid int64) (View, error) {
	s, err := o.find(key, uid)
	if err != nil {
		return View{}, err
	}
	res, err := o.send(ctx, s, envelope{ctx: ctx, inspect: true})
	return res.view, err
}

func (o *Orchestrator) send(ctx context.Context, s *session, env envelope) (result, error) {
	env.reply = make(chan result, 1)
	select {
	case s.mailbox <- env:
	case <-s.quit:
		return result{}, domain.ErrSessionNotFound
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
	select {
	case res := <-env.reply:
		return res, nil
	case <-s.done:
		return result{}, domain.ErrSessionNotFound
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}

// Disconnect 断开会话，丢弃所有状态
func (o *Orchestrator) Disconnect(_ context.Context, key string, uid int64) error {
	s, err := o.find(key, uid)
	if err != nil {
		return err
	}
	o.remove(s)
	return nil
}

// ReapIdle 断开空闲时间超过 idle 的会话，返回断开的数量
func (o *Orchestrator) ReapIdle(_ context.Context, idle time.Duration) int {
	now := time.Now()
	var expired []*session
	o.sessions.Range(func(_ string, s *session) bool {
		if s.idleSince(now) > idle {
			expired = append(expired, s)
		}
		return true
	})
	for _, s := range expired {
		o.remove(s)
	}
	return len(expired)
}

// Close 断开所有的会话
func (o *Orchestrator) Close() {
	o.sessions.Range(func(_ string, s *session) bool {
		o.remove(s)
		return true
	})
}

func (o *Orchestrator) remove(s *session) {
	if _, ok := o.sessions.LoadAndDelete(s.key); !ok {
		return
	}
	s.stop()
	activeSessions.Dec()
	o.logger.Info("断开面试会话", elog.Int64("uid", s.uid), elog.String("session", s.key))
}

func (o *Orchestrator) find(key string, uid int64) (*session, error) {
	s, ok := o.sessions.Load(key)
	if !ok || s.uid != uid {
		return nil, fmt.Errorf("%w: key %s", domain.ErrSessionNotFound, key)
	}
	return s, nil
}

// callCtx 每一次外部调用都有超时
func (o *Orchestrator) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.cfg.CallTimeout)
}
