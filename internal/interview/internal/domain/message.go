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

package domain

// Inbound 用户发给会话的消息，只有下面几种
type Inbound interface {
	inbound()
}

// Selection 点击了某个阶段的按钮
type Selection struct {
	Stage Stage
	Value string
}

// Text 文本消息
type Text struct {
	Content string
}

// Upload 上传简历
type Upload struct {
	Filename string
	Data     []byte
}

type AudioStart struct {
	Mime string
}

type AudioChunk struct {
	Data []byte
}

type AudioEnd struct{}

type Restart struct{}

func (Selection) inbound()  {}
func (Text) inbound()       {}
func (Upload) inbound()     {}
func (AudioStart) inbound() {}
func (AudioChunk) inbound() {}
func (AudioEnd) inbound()   {}
func (Restart) inbound()    {}

type OutboundKind string

const (
	OutboundText  OutboundKind = "text"
	OutboundAudio OutboundKind = "audio"
)

const (
	AuthorInterviewer = "Interviewer"
	AuthorSystem      = "System"
)

// Action 前端展示的按钮
type Action struct {
	Stage Stage
	Value string
	Label string
}

// Outbound 会话发给用户的消息
type Outbound struct {
	Kind    OutboundKind
	Author  string
	Content string
	Audio   []byte
	Mime    string
	Actions []Action
}

func SystemText(content string, actions ...Action) Outbound {
	return Outbound{
		Kind:    OutboundText,
		Author:  AuthorSystem,
		Content: content,
		Actions: actions,
	}
}

// RestartAction 结束之后唯一有效的按钮
func RestartAction() Action {
	return Action{Value: "restart", Label: "Start New Interview"}
}
