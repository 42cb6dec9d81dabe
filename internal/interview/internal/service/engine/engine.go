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

package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// FallbackQuestion 生成问题失败的时候使用
const FallbackQuestion = "I apologize, but I'm having trouble generating the next question. " +
	"Could you tell me more about your experience?"

//go:generate mockgen -source=./engine.go -destination=./mocks/dialogue.mock.go -package=enginemocks
type Dialogue interface {
	// Ask 生成下一个问题
	Ask(ctx context.Context, qc QuestionContext) (string, error)
	// Summarize 生成面试总结
	Summarize(ctx context.Context, sc SummaryContext) (string, error)
}

type QuestionContext struct {
	Uid     int64
	Profile domain.CandidateProfile
	Setup   domain.Setup
	// 从 1 开始
	QuestionNumber int
	MaxQuestions   int
	Conversation   domain.Conversation
}

type SummaryContext struct {
	Uid          int64
	Profile      domain.CandidateProfile
	Setup        domain.Setup
	Conversation domain.Conversation
}

type state uint8

const (
	stateAwaitingQuestion state = iota
	stateAwaitingResponse
	stateConcluded
)

func (s state) String() string {
	switch s {
	case stateAwaitingQuestion:
		return "awaiting_question"
	case stateAwaitingResponse:
		return "awaiting_response"
	default:
		return "concluded"
	}
}

// Engine 一次面试的问答循环。
// 它不是线程安全的，由会话独占
type Engine struct {
	uid          int64
	profile      domain.CandidateProfile
	setup        domain.Setup
	maxQuestions int

	dialogue Dialogue
	writer   ReportWriter

	state             state
	conversation      domain.Conversation
	questionsAsked    int
	responsesReceived int

	logger *elog.Component
	now    func() time.Time
}

func NewEngine(uid int64, profile domain.CandidateProfile, setup domain.Setup,
	dialogue Dialogue, writer ReportWriter) (*Engine, error) {
	if setup.QuestionCount < domain.MinQuestionCount {
		return nil, fmt.Errorf("%w: 题目数量必须大于 0, 实际 %d", domain.ErrContract, setup.QuestionCount)
	}
	return &Engine{
		uid:          uid,
		profile:      profile.Clone(),
		setup:        setup,
		maxQuestions: setup.QuestionCount,
		dialogue:     dialogue,
		writer:       writer,
		conversation: make(domain.Conversation, 0, setup.QuestionCount*2),
		logger:       elog.DefaultLogger,
		now:          time.Now,
	}, nil
}

// NextQuestion 问下一个问题。
// 生成失败的时候使用兜底问题，questionsAsked 依旧只加一
func (e *Engine) NextQuestion(ctx context.Context) (string, error) {
	if e.state != stateAwaitingQuestion {
		return "", e.contractErr("NextQuestion")
	}
	question, err := e.dialogue.Ask(ctx, QuestionContext{
		Uid:            e.uid,
		Profile:        e.profile,
		Setup:          e.setup,
		QuestionNumber: e.questionsAsked + 1,
		MaxQuestions:   e.maxQuestions,
		Conversation:   e.conversation.Clone(),
	})
	question = strings.TrimSpace(question)
	if err != nil || question == "" {
		e.logger.Error("生成面试问题失败，使用兜底问题",
			elog.FieldErr(err),
			elog.Int64("uid", e.uid),
			elog.Int("question", e.questionsAsked+1))
		question = FallbackQuestion
	}
	e.questionsAsked++
	e.conversation = append(e.conversation, domain.Utterance{
		Role:    domain.RoleInterviewer,
		Content: question,
	})
	e.state = stateAwaitingResponse
	return question, nil
}

// RecordResponse 记录候选人的回答，不会调用大模型
func (e *Engine) RecordResponse(utterance string) error {
	if e.state != stateAwaitingResponse {
		return e.contractErr("RecordResponse")
	}
	e.conversation = append(e.conversation, domain.Utterance{
		Role:    domain.RoleCandidate,
		Content: utterance,
	})
	e.responsesReceived++
	if e.ShouldConclude() {
		e.state = stateConcluded
	} else {
		e.state = stateAwaitingQuestion
	}
	return nil
}

func (e *Engine) ShouldConclude() bool {
	return e.responsesReceived >= e.maxQuestions
}

// BuildReport 只能在面试结束之后调用
func (e *Engine) BuildReport(ctx context.Context) (domain.InterviewReport, error) {
	if !e.ShouldConclude() {
		return domain.InterviewReport{}, fmt.Errorf("%w: 已回答 %d/%d",
			domain.ErrPrematureReport, e.responsesReceived, e.maxQuestions)
	}
	conversation := e.conversation.Clone()
	summary, err := e.dialogue.Summarize(ctx, SummaryContext{
		Uid:          e.uid,
		Profile:      e.profile,
		Setup:        e.setup,
		Conversation: conversation,
	})
	summary = strings.TrimSpace(summary)
	if err != nil {
		return domain.InterviewReport{}, fmt.Errorf("%w: 生成面试总结失败: %w", domain.ErrBackendFailure, err)
	}
	if summary == "" {
		return domain.InterviewReport{}, fmt.Errorf("%w: 面试总结为空", domain.ErrBackendFailure)
	}
	return domain.InterviewReport{
		Profile:        e.profile.Clone(),
		Setup:          e.setup,
		Conversation:   conversation,
		Summary:        summary,
		Ratings:        ParseRatings(summary),
		Recommendation: domain.ParseRecommendation(summary),
		Ctime:          e.now().UnixMilli(),
	}, nil
}

// PersistAsText 把报告写成文本文件，失败只记录日志
func (e *Engine) PersistAsText(ctx context.Context, report domain.InterviewReport) bool {
	path, err := e.writer.Write(ctx, report)
	if err != nil {
		e.logger.Error("保存面试报告失败",
			elog.FieldErr(err),
			elog.Int64("uid", e.uid))
		return false
	}
	e.logger.Info("保存面试报告成功",
		elog.Int64("uid", e.uid),
		elog.String("path", path))
	return true
}

func (e *Engine) QuestionsAsked() int {
	return e.questionsAsked
}

func (e *Engine) ResponsesReceived() int {
	return e.responsesReceived
}

func (e *Engine) MaxQuestions() int {
	return e.maxQuestions
}

func (e *Engine) Conversation() domain.Conversation {
	return e.conversation.Clone()
}

func (e *Engine) contractErr(op string) error {
	return fmt.Errorf("%w: 状态 %s 下不能调用 %s, 已提问 %d, 已回答 %d",
		domain.ErrContract, e.state, op, e.questionsAsked, e.responsesReceived)
}
