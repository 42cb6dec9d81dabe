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

package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate"
	gatemocks "github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGate_Evaluate(t *testing.T) {
	req := gate.Request{
		ResumeText:      "resume",
		Role:            "Backend Developer",
		Company:         "Google",
		ExperienceLevel: "Junior",
	}
	full := func(score float64) gate.ScoreResult {
		return gate.ScoreResult{
			Name:              ptr("Alice"),
			Skills:            []string{"Go", "MySQL"},
			YearsOfExperience: ptr(2.0),
			Education:         "BSc",
			FitScore:          ptr(score),
			Reasoning:         "ok",
			CompanyFit:        "good",
		}
	}
	testCases := []struct {
		name     string
		mock     func(ctrl *gomock.Controller) gate.Scorer
		wantErr  error
		wantProf domain.CandidateProfile
		wantDec  domain.Decision
	}{
		{
			name: "高于阈值进入面试",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(full(82), nil)
				return s
			},
			wantProf: domain.CandidateProfile{
				Name:              "Alice",
				Skills:            []string{"Go", "MySQL"},
				YearsOfExperience: 2,
				Education:         "BSc",
				FitScore:          82,
				Reasoning:         "ok",
				CompanyFit:        "good",
			},
			wantDec: domain.DecisionAdmit,
		},
		{
			name: "等于阈值进入面试",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(full(50), nil)
				return s
			},
			wantProf: domain.CandidateProfile{
				Name:              "Alice",
				Skills:            []string{"Go", "MySQL"},
				YearsOfExperience: 2,
				Education:         "BSc",
				FitScore:          50,
				Reasoning:         "ok",
				CompanyFit:        "good",
			},
			wantDec: domain.DecisionAdmit,
		},
		{
			name: "低于阈值拒绝",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(full(40), nil)
				return s
			},
			wantProf: domain.CandidateProfile{
				Name:              "Alice",
				Skills:            []string{"Go", "MySQL"},
				YearsOfExperience: 2,
				Education:         "BSc",
				FitScore:          40,
				Reasoning:         "ok",
				CompanyFit:        "good",
			},
			wantDec: domain.DecisionReject,
		},
		{
			name: "分数超过上限被截断",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(full(130), nil)
				return s
			},
			wantProf: domain.CandidateProfile{
				Name:              "Alice",
				Skills:            []string{"Go", "MySQL"},
				YearsOfExperience: 2,
				Education:         "BSc",
				FitScore:          100,
				Reasoning:         "ok",
				CompanyFit:        "good",
			},
			wantDec: domain.DecisionAdmit,
		},
		{
			name: "缺少必填字段",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				res := full(90)
				res.Skills = nil
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(res, nil)
				return s
			},
			wantErr: domain.ErrBackendFailure,
			wantDec: domain.DecisionReject,
		},
		{
			name: "缺少分数",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				res := full(90)
				res.FitScore = nil
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(res, nil)
				return s
			},
			wantErr: domain.ErrBackendFailure,
			wantDec: domain.DecisionReject,
		},
		{
			name: "评分服务失败",
			mock: func(ctrl *gomock.Controller) gate.Scorer {
				s := gatemocks.NewMockScorer(ctrl)
				s.EXPECT().Score(gomock.Any(), int64(1), req).Return(gate.ScoreResult{}, errors.New("mock err"))
				return s
			},
			wantErr: domain.ErrBackendFailure,
			wantDec: domain.DecisionReject,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			g := gate.NewGate(tc.mock(ctrl), 50)
			prof, dec, err := g.Evaluate(context.Background(), 1, req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantDec, dec)
			assert.Equal(t, tc.wantProf, prof)
		})
	}
}

func TestDecide(t *testing.T) {
	for score := 0; score <= 100; score++ {
		want := domain.DecisionReject
		if score >= 75 {
			want = domain.DecisionAdmit
		}
		assert.Equal(t, want, gate.Decide(score, 75), "score=%d", score)
	}
}

func TestClampScore(t *testing.T) {
	testCases := []struct {
		name  string
		input float64
		want  int
	}{
		{name: "负数", input: -3, want: 0},
		{name: "正常", input: 72, want: 72},
		{name: "四舍五入", input: 72.5, want: 73},
		{name: "超过上限", input: 101, want: 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, gate.ClampScore(tc.input))
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
