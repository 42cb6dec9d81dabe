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
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate"
)

//go:generate mockgen -source=./types.go -destination=./mocks/orchestrator.mock.go -package=orchestratormocks
type Evaluator interface {
	Evaluate(ctx context.Context, uid int64, req gate.Request) (domain.CandidateProfile, domain.Decision, error)
	Threshold() int
}

// Extractor 从上传的文档中提取文本
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// Transcriber 语音转文字
type Transcriber interface {
	Transcribe(ctx context.Context, filename, mime string, data []byte) (string, error)
}

// Synthesizer 文字转语音，返回空的 audio 代表没有语音
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (audio []byte, mime string, err error)
}

// HistoryStore 保存已经结束的面试
type HistoryStore interface {
	Append(ctx context.Context, uid int64, report domain.InterviewReport) (int64, error)
}

type Config struct {
	// 可以选择的公司
	Companies []string
	// 题目数量阶段没有给值的时候使用
	DefaultQuestions int
	// 小于这个大小的录音视为静音
	MinAudioBytes int
	// 单次外部调用的超时时间
	CallTimeout time.Duration
	// 等待会话处理消息的队列长度
	MailboxSize int
}

// Reply 一次消息处理的结果
type Reply struct {
	Stage    domain.Stage
	Messages []domain.Outbound
	// 已经在会话内部处理掉的错误，会话仍然可用。
	// 可能是 ErrInput, ErrBackendFailure, ErrPersistence
	Err error
}

// View 会话的只读快照
type View struct {
	Key               string
	Uid               int64
	Stage             domain.Stage
	Setup             domain.Setup
	Profile           *domain.CandidateProfile
	QuestionsAsked    int
	ResponsesReceived int
	MaxQuestions      int
	Recording         bool
}
