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
	"sync"
	"sync/atomic"
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/audio"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	"github.com/gotomicro/ego/core/elog"
)

type envelope struct {
	// 入队时候的代数，处理的时候如果已经不是当前代数就直接丢弃
	gen     uint64
	ctx     context.Context
	msg     domain.Inbound
	inspect bool
	reply   chan result
}

type result struct {
	reply Reply
	view  View
}

// session 一个会话对应一个 goroutine，所有的状态修改都在这个 goroutine 上完成
type session struct {
	key string
	uid int64
	o   *Orchestrator

	mailbox chan envelope
	quit    chan struct{}
	done    chan struct{}
	stopped sync.Once

	// mu 保护 gen 和 cancel
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	lastActive atomic.Int64

	// 下面的字段只在 run 所在的 goroutine 上访问
	stage     domain.Stage
	setup     domain.Setup
	profile   *domain.CandidateProfile
	engine    *engine.Engine
	assembler *audio.Assembler
	logger    *elog.Component
}

func newSession(o *Orchestrator, key string, uid int64) *session {
	s := &session{
		key:       key,
		uid:       uid,
		o:         o,
		mailbox:   make(chan envelope, o.cfg.MailboxSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		stage:     domain.StageSetupCompany,
		assembler: audio.NewAssembler(o.cfg.MinAudioBytes),
		logger:    o.logger,
	}
	s.touch()
	return s
}

func (s *session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case env := <-s.mailbox:
			s.process(env)
		}
	}
}

func (s *session) process(env envelope) {
	if env.inspect {
		env.reply <- result{view: s.view()}
		return
	}
	ctx, ok := s.begin(env.ctx, env.gen)
	if !ok {
		// 重新开始之前发出来的消息
		s.logger.Debug("丢弃过期消息", elog.String("session", s.key))
		env.reply <- result{reply: Reply{Stage: s.stage}}
		return
	}
	reply := s.handle(ctx, env.gen, env.msg)
	s.end()
	reply.Stage = s.stage
	env.reply <- result{reply: reply}
}

// begin 为本次处理创建可以被 restart 取消的 context
func (s *session) begin(parent context.Context, gen uint64) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, true
}

func (s *session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// bump 进入新的一代，并取消正在进行的外部调用
func (s *session) bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
	}
	return s.gen
}

func (s *session) currentGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// stale 外部调用返回之后检查结果是否还能使用
func (s *session) stale(gen uint64) bool {
	return s.currentGen() != gen
}

func (s *session) stop() {
	s.stopped.Do(func() {
		s.bump()
		close(s.quit)
	})
}

func (s *session) touch() {
	s.lastActive.Store(time.Now().UnixMilli())
}

func (s *session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.lastActive.Load()))
}

func (s *session) view() View {
	v := View{
		Key:       s.key,
		Uid:       s.uid,
		Stage:     s.stage,
		Setup:     s.setup,
		Recording: s.assembler.Recording(),
	}
	if s.profile != nil {
		p := s.profile.Clone()
		v.Profile = &p
	}
	if s.engine != nil {
		v.QuestionsAsked = s.engine.QuestionsAsked()
		v.ResponsesReceived = s.engine.ResponsesReceived()
		v.MaxQuestions = s.engine.MaxQuestions()
	}
	return v
}
