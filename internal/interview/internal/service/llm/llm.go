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

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ecodeclub/aiinterview/internal/ai"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate"
	"github.com/lithammer/shortuuid/v4"
)

// 大模型经常会在 JSON 外面包一层 ```json
const jsonExpr = `\{(?s:.*)\}`

var jsonRegexp = regexp.MustCompile(jsonExpr)

// Scorer 使用 resume_score 业务给简历打分
type Scorer struct {
	aiSvc ai.LLMService
}

var _ gate.Scorer = &Scorer{}

func NewScorer(aiSvc ai.LLMService) *Scorer {
	return &Scorer{aiSvc: aiSvc}
}

type scoreAnswer struct {
	Name              *string  `json:"name"`
	Skills            []string `json:"skills"`
	YearsOfExperience *float64 `json:"years_of_experience"`
	Education         string   `json:"education"`
	FitScore          *float64 `json:"fit_score"`
	Reasoning         string   `json:"reasoning"`
	CompanyFit        string   `json:"company_fit"`
}

func (s *Scorer) Score(ctx context.Context, uid int64, req gate.Request) (gate.ScoreResult, error) {
	resp, err := s.aiSvc.Invoke(ctx, ai.LLMRequest{
		Uid: uid,
		Tid: shortuuid.New(),
		Biz: ai.BizResumeScore,
		Input: []string{
			req.Role,
			req.Company,
			req.ExperienceLevel,
			req.ResumeText,
		},
	})
	if err != nil {
		return gate.ScoreResult{}, err
	}
	raw := jsonRegexp.FindString(resp.Answer)
	if raw == "" {
		return gate.ScoreResult{}, fmt.Errorf("评分结果不是 JSON: %q", resp.Answer)
	}
	var ans scoreAnswer
	err = json.Unmarshal([]byte(raw), &ans)
	if err != nil {
		return gate.ScoreResult{}, fmt.Errorf("解析评分结果失败: %w", err)
	}
	return gate.ScoreResult{
		Name:              ans.Name,
		Skills:            ans.Skills,
		YearsOfExperience: ans.YearsOfExperience,
		Education:         ans.Education,
		FitScore:          ans.FitScore,
		Reasoning:         ans.Reasoning,
		CompanyFit:        ans.CompanyFit,
	}, nil
}

// Dialogue 面试官，提问使用 interview_question，总结使用 interview_summary
type Dialogue struct {
	aiSvc ai.LLMService
}

var _ engine.Dialogue = &Dialogue{}

func NewDialogue(aiSvc ai.LLMService) *Dialogue {
	return &Dialogue{aiSvc: aiSvc}
}

// 展示给大模型的技能数量
const maxPromptSkills = 5

func (d *Dialogue) Ask(ctx context.Context, qc engine.QuestionContext) (string, error) {
	skills := qc.Profile.Skills
	if len(skills) > maxPromptSkills {
		skills = skills[:maxPromptSkills]
	}
	instruction := "This is the start of the interview. Greet the candidate and ask your first question."
	if len(qc.Conversation) > 0 {
		instruction = "Ask your next question based on the candidate's latest response."
	}
	resp, err := d.aiSvc.Invoke(ctx, ai.LLMRequest{
		Uid: qc.Uid,
		Tid: shortuuid.New(),
		Biz: ai.BizInterviewQuestion,
		Input: []string{
			qc.Profile.Name,
			qc.Setup.Role,
			qc.Setup.Company,
			qc.Setup.ExperienceLevel,
			strings.Join(skills, ", "),
			strconv.FormatFloat(qc.Profile.YearsOfExperience, 'f', -1, 64),
			strconv.Itoa(qc.QuestionNumber),
			strconv.Itoa(qc.MaxQuestions),
			renderConversation(qc.Conversation),
			instruction,
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (d *Dialogue) Summarize(ctx context.Context, sc engine.SummaryContext) (string, error) {
	resp, err := d.aiSvc.Invoke(ctx, ai.LLMRequest{
		Uid: sc.Uid,
		Tid: shortuuid.New(),
		Biz: ai.BizInterviewSummary,
		Input: []string{
			sc.Profile.Name,
			sc.Setup.Role,
			sc.Setup.Company,
			strconv.Itoa(sc.Profile.FitScore),
			renderConversation(sc.Conversation),
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func renderConversation(c domain.Conversation) string {
	if len(c) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, u := range c {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(u.Role.Label())
		sb.WriteString(": ")
		sb.WriteString(u.Content)
	}
	return sb.String()
}
