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

package web

import (
	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/orchestrator"
	"github.com/ecodeclub/ekit/slice"
)

type SessionKey struct {
	Key string `json:"key"`
}

type SelectionReq struct {
	Key   string `json:"key"`
	Stage string `json:"stage"`
	Value string `json:"value"`
}

type TextReq struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

type AudioStartReq struct {
	Key  string `json:"key"`
	Mime string `json:"mime"`
}

// AudioChunkReq data 是 base64 编码的音频片段
type AudioChunkReq struct {
	Key  string `json:"key"`
	Data []byte `json:"data"`
}

type ListReq struct {
	Limit int `json:"limit,omitempty"`
}

type DetailReq struct {
	ID int64 `json:"id"`
}

type Action struct {
	Stage string `json:"stage,omitempty"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type Message struct {
	Kind    string   `json:"kind"`
	Author  string   `json:"author"`
	Content string   `json:"content,omitempty"`
	Audio   []byte   `json:"audio,omitempty"`
	Mime    string   `json:"mime,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

type Reply struct {
	Key      string    `json:"key,omitempty"`
	Stage    string    `json:"stage"`
	Messages []Message `json:"messages"`
}

func newReply(key string, r orchestrator.Reply) Reply {
	return Reply{
		Key:   key,
		Stage: r.Stage.String(),
		Messages: slice.Map(r.Messages, func(_ int, src domain.Outbound) Message {
			return Message{
				Kind:    string(src.Kind),
				Author:  src.Author,
				Content: src.Content,
				Audio:   src.Audio,
				Mime:    src.Mime,
				Actions: slice.Map(src.Actions, func(_ int, a domain.Action) Action {
					return Action{
						Stage: a.Stage.String(),
						Value: a.Value,
						Label: a.Label,
					}
				}),
			}
		}),
	}
}

type Setup struct {
	Company         string `json:"company,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	RoleCategory    string `json:"roleCategory,omitempty"`
	Role            string `json:"role,omitempty"`
	QuestionCount   int    `json:"questionCount,omitempty"`
}

type Profile struct {
	Name              string   `json:"name"`
	Skills            []string `json:"skills"`
	YearsOfExperience float64  `json:"yearsOfExperience"`
	Education         string   `json:"education,omitempty"`
	FitScore          int      `json:"fitScore"`
	Reasoning         string   `json:"reasoning,omitempty"`
	CompanyFit        string   `json:"companyFit,omitempty"`
}

type State struct {
	Key               string   `json:"key"`
	Stage             string   `json:"stage"`
	Setup             Setup    `json:"setup"`
	Profile           *Profile `json:"profile,omitempty"`
	QuestionsAsked    int      `json:"questionsAsked"`
	ResponsesReceived int      `json:"responsesReceived"`
	MaxQuestions      int      `json:"maxQuestions"`
	Recording         bool     `json:"recording"`
}

func newState(v orchestrator.View) State {
	res := State{
		Key:   v.Key,
		Stage: v.Stage.String(),
		Setup: Setup{
			Company:         v.Setup.Company,
			ExperienceLevel: v.Setup.ExperienceLevel,
			RoleCategory:    v.Setup.RoleCategory,
			Role:            v.Setup.Role,
			QuestionCount:   v.Setup.QuestionCount,
		},
		QuestionsAsked:    v.QuestionsAsked,
		ResponsesReceived: v.ResponsesReceived,
		MaxQuestions:      v.MaxQuestions,
		Recording:         v.Recording,
	}
	if v.Profile != nil {
		res.Profile = &Profile{
			Name:              v.Profile.Name,
			Skills:            v.Profile.Skills,
			YearsOfExperience: v.Profile.YearsOfExperience,
			Education:         v.Profile.Education,
			FitScore:          v.Profile.FitScore,
			Reasoning:         v.Profile.Reasoning,
			CompanyFit:        v.Profile.CompanyFit,
		}
	}
	return res
}

type Utterance struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type History struct {
	ID              int64       `json:"id"`
	Candidate       string      `json:"candidate"`
	Company         string      `json:"company"`
	Role            string      `json:"role"`
	ExperienceLevel string      `json:"experienceLevel"`
	FitScore        int         `json:"fitScore"`
	NumQuestions    int         `json:"numQuestions"`
	Recommendation  string      `json:"recommendation"`
	Summary         string      `json:"summary,omitempty"`
	Transcript      []Utterance `json:"transcript,omitempty"`
	Ctime           int64       `json:"ctime"`
}

// newHistory 列表里面不返回总结和对话
func newHistory(e domain.HistoryEntry, detail bool) History {
	res := History{
		ID:              e.ID,
		Candidate:       e.Candidate,
		Company:         e.Company,
		Role:            e.Role,
		ExperienceLevel: e.ExperienceLevel,
		FitScore:        e.FitScore,
		NumQuestions:    e.NumQuestions,
		Recommendation:  string(e.Recommendation),
		Ctime:           e.Ctime,
	}
	if detail {
		res.Summary = e.Summary
		res.Transcript = slice.Map(e.Transcript, func(_ int, src domain.Utterance) Utterance {
			return Utterance{Role: string(src.Role), Content: src.Content}
		})
	}
	return res
}

type HistoryList struct {
	Total int64     `json:"total"`
	List  []History `json:"list"`
}

type Stats struct {
	Total             int64   `json:"total"`
	AvgScore          float64 `json:"avgScore"`
	MaxScore          int     `json:"maxScore"`
	DistinctCompanies int64   `json:"distinctCompanies"`
}
