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

// Stage 会话所处的阶段
type Stage string

const (
	StageSetupCompany      Stage = "setup_company"
	StageSetupExperience   Stage = "setup_experience"
	StageSetupRoleCategory Stage = "setup_role_category"
	StageSetupRole         Stage = "setup_role"
	StageSetupQuestions    Stage = "setup_question_count"
	StageAwaitingResume    Stage = "awaiting_resume"
	StageInterview         Stage = "interview"
	StageRejected          Stage = "rejected"
	StageCompleted         Stage = "completed"
)

// setupOrder 配置阶段的先后顺序
var setupOrder = []Stage{
	StageSetupCompany,
	StageSetupExperience,
	StageSetupRoleCategory,
	StageSetupRole,
	StageSetupQuestions,
}

func (s Stage) String() string {
	return string(s)
}

func (s Stage) IsSetup() bool {
	for _, st := range setupOrder {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminal rejected 和 completed 只接受重新开始
func (s Stage) IsTerminal() bool {
	return s == StageRejected || s == StageCompleted
}

// NextSetup 返回配置阶段的下一个阶段，最后一个配置阶段之后是等待简历
func (s Stage) NextSetup() Stage {
	for i, st := range setupOrder {
		if st != s {
			continue
		}
		if i == len(setupOrder)-1 {
			return StageAwaitingResume
		}
		return setupOrder[i+1]
	}
	return s
}
