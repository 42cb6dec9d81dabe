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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Apply(t *testing.T) {
	companies := []string{"Google", "Amazon"}
	testCases := []struct {
		name    string
		before  Setup
		stage   Stage
		value   string
		after   Setup
		wantErr error
	}{
		{
			name:  "选择公司",
			stage: StageSetupCompany,
			value: "Amazon",
			after: Setup{Company: "Amazon"},
		},
		{
			name:    "公司不在列表里",
			stage:   StageSetupCompany,
			value:   "amazon",
			wantErr: ErrInput,
		},
		{
			name:    "经验等级不存在",
			before:  Setup{Company: "Google"},
			stage:   StageSetupExperience,
			value:   "Principal",
			after:   Setup{Company: "Google"},
			wantErr: ErrInput,
		},
		{
			name:   "修改岗位大类会清空岗位",
			before: Setup{Company: "Google", RoleCategory: "Engineering", Role: "Backend Developer"},
			stage:  StageSetupRoleCategory,
			value:  "Data",
			after:  Setup{Company: "Google", RoleCategory: "Data"},
		},
		{
			name:    "岗位不属于岗位大类",
			before:  Setup{RoleCategory: "Product"},
			stage:   StageSetupRole,
			value:   "Cloud Engineer",
			after:   Setup{RoleCategory: "Product"},
			wantErr: ErrInput,
		},
		{
			name:   "不在按钮上的题目数量",
			stage:  StageSetupQuestions,
			value:  "12",
			after:  Setup{QuestionCount: 12},
		},
		{
			name:    "题目数量为 0",
			stage:   StageSetupQuestions,
			value:   "0",
			wantErr: ErrInput,
		},
		{
			name:    "题目数量不是数字",
			stage:   StageSetupQuestions,
			value:   "five",
			wantErr: ErrInput,
		},
		{
			name:    "非配置阶段",
			stage:   StageInterview,
			value:   "x",
			wantErr: ErrInput,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			after, err := tc.before.Apply(tc.stage, tc.value, companies)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				assert.Equal(t, tc.before, after)
				return
			}
			assert.Equal(t, tc.after, after)
		})
	}
}

func TestSetup_Complete(t *testing.T) {
	full := Setup{
		Company:         "Google",
		ExperienceLevel: "Senior",
		RoleCategory:    "Data",
		Role:            "Data Engineer",
		QuestionCount:   1,
	}
	assert.True(t, full.Complete())
	missing := full
	missing.Role = ""
	assert.False(t, missing.Complete())
	missing = full
	missing.QuestionCount = 0
	assert.False(t, missing.Complete())
}

func TestStage(t *testing.T) {
	var stages []Stage
	for st := StageSetupCompany; st.IsSetup(); st = st.NextSetup() {
		stages = append(stages, st)
	}
	require.Len(t, stages, 5)
	assert.Equal(t, StageAwaitingResume, StageSetupQuestions.NextSetup())
	assert.Equal(t, StageInterview, StageInterview.NextSetup())
	assert.True(t, StageRejected.IsTerminal())
	assert.True(t, StageCompleted.IsTerminal())
	assert.False(t, StageInterview.IsTerminal())
	assert.False(t, StageAwaitingResume.IsSetup())
}

func TestParseRecommendation(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want Recommendation
	}{
		{name: "强烈推荐", text: "Final: STRONGLY RECOMMEND this candidate", want: RecommendationStrong},
		{name: "不推荐优先", text: "I do not recommend. Others may recommend.", want: RecommendationReject},
		{name: "考虑", text: "Recommendation: Consider", want: RecommendationConsider},
		{name: "推荐", text: "I would recommend them", want: RecommendationRecommend},
		{name: "没有结论", text: "good answers", want: RecommendationConsider},
		{
			name: "改进建议里面出现consider",
			text: "1. Technical Skills: 8/10\n" +
				"4. Areas for Improvement: the candidate should consider learning Kubernetes.\n" +
				"6. Final Recommendation: Recommend",
			want: RecommendationRecommend,
		},
		{
			name: "优势里面出现do not recommend",
			text: "Strengths: I do not recommend changing their approach to testing.\n" +
				"Weaknesses: limited system design depth.\n" +
				"Final Recommendation: Strongly Recommend",
			want: RecommendationStrong,
		},
		{
			name: "结论在标题下一行",
			text: "Areas for Improvement: might consider more practice.\n" +
				"## Final Recommendation\n\n**Do Not Recommend**\n",
			want: RecommendationReject,
		},
		{
			name: "没有Final只有Recommendation标题",
			text: "Communication: would recommend slowing down.\nRecommendation: Consider",
			want: RecommendationConsider,
		},
		{
			name: "结论行识别不出来回退全文",
			text: "Overall the candidate is solid, I recommend them.\nFinal Recommendation: TBD",
			want: RecommendationRecommend,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRecommendation(tc.text))
		})
	}
}

func TestConversation(t *testing.T) {
	conv := Conversation{
		{Role: RoleInterviewer, Content: "q"},
		{Role: RoleCandidate, Content: "a"},
	}
	cloned := conv.Clone()
	cloned[0].Content = "changed"
	assert.Equal(t, "q", conv[0].Content)
	assert.Equal(t, RoleCandidate, conv.LastRole())
	assert.Equal(t, "Interviewer", RoleInterviewer.Label())
}
