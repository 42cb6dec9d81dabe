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
	"fmt"
	"strings"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
)

var stagePrompts = map[domain.Stage]string{
	domain.StageSetupCompany:      "Which company would you like to interview for?",
	domain.StageSetupExperience:   "What is your experience level?",
	domain.StageSetupRoleCategory: "Which area does the role belong to?",
	domain.StageSetupRole:         "Which role are you applying for?",
	domain.StageSetupQuestions:    "How many questions should the interview have?",
	domain.StageAwaitingResume:    "Please upload your resume (PDF, DOCX or TXT) to continue.",
	domain.StageInterview:         "Please answer the current question by typing or recording your voice.",
	domain.StageRejected:          "This session has ended. Start a new interview to try again.",
	domain.StageCompleted:         "The interview is complete. Start a new interview to practice again.",
}

func (o *Orchestrator) greeting() []domain.Outbound {
	return []domain.Outbound{
		domain.SystemText("Welcome to the AI mock interview! Let's set things up first."),
		o.prompt(domain.StageSetupCompany, domain.Setup{}),
	}
}

// prompt 当前阶段的提示，配置阶段带上可选项
func (o *Orchestrator) prompt(stage domain.Stage, setup domain.Setup) domain.Outbound {
	text := stagePrompts[stage]
	switch {
	case stage.IsSetup():
		opts := setup.Options(stage, o.cfg.Companies)
		actions := make([]domain.Action, 0, len(opts))
		for _, opt := range opts {
			actions = append(actions, domain.Action{Stage: stage, Value: opt, Label: opt})
		}
		return domain.SystemText(text, actions...)
	case stage.IsTerminal():
		return domain.SystemText(text, domain.RestartAction())
	default:
		return domain.SystemText(text)
	}
}

func profileSummary(p domain.CandidateProfile, threshold int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidate: %s\n", p.Name)
	fmt.Fprintf(&sb, "Fit Score: %d/100 (threshold %d)\n", p.FitScore, threshold)
	fmt.Fprintf(&sb, "Experience: %.1f years\n", p.YearsOfExperience)
	if p.Education != "" {
		fmt.Fprintf(&sb, "Education: %s\n", p.Education)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if p.Reasoning != "" {
		fmt.Fprintf(&sb, "Assessment: %s\n", p.Reasoning)
	}
	if p.CompanyFit != "" {
		fmt.Fprintf(&sb, "Company Fit: %s\n", p.CompanyFit)
	}
	return strings.TrimRight(sb.String(), "\n")
}
