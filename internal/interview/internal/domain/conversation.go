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

type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// Label 报告里面的展示名
func (r Role) Label() string {
	if r == RoleInterviewer {
		return "Interviewer"
	}
	return "Candidate"
}

type Utterance struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation 面试对话记录，只追加，面试官先说，双方严格交替
type Conversation []Utterance

func (c Conversation) Clone() Conversation {
	return append(Conversation(nil), c...)
}

// LastRole 空对话返回空字符串
func (c Conversation) LastRole() Role {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1].Role
}
