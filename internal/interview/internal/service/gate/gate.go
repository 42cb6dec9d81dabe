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

package gate

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./gate.go -destination=./mocks/scorer.mock.go -package=gatemocks
type Scorer interface {
	Score(ctx context.Context, uid int64, req Request) (ScoreResult, error)
}

type Request struct {
	ResumeText      string
	Role            string
	Company         string
	ExperienceLevel string
}

// ScoreResult 评分能力返回的原始字段，nil 代表没有返回这个字段
type ScoreResult struct {
	Name              *string
	Skills            []string
	YearsOfExperience *float64
	Education         string
	FitScore          *float64
	Reasoning         string
	CompanyFit        string
}

// Gate 根据简历评分决定是否进入面试
type Gate struct {
	scorer    Scorer
	threshold int
	logger    *elog.Component
}

func NewGate(scorer Scorer, threshold int) *Gate {
	return &Gate{
		scorer:    scorer,
		threshold: threshold,
		logger:    elog.DefaultLogger,
	}
}

func (g *Gate) Threshold() int {
	return g.threshold
}

// Evaluate 失败的时候不会返回部分结果
func (g *Gate) Evaluate(ctx context.Context, uid int64, req Request) (domain.CandidateProfile, domain.Decision, error) {
	res, err := g.scorer.Score(ctx, uid, req)
	if err != nil {
		return domain.CandidateProfile{}, domain.DecisionReject,
			fmt.Errorf("%w: 简历评分失败: %w", domain.ErrBackendFailure, err)
	}
	profile, err := toProfile(res)
	if err != nil {
		return domain.CandidateProfile{}, domain.DecisionReject, err
	}
	decision := Decide(profile.FitScore, g.threshold)
	g.logger.Info("简历评估完成",
		elog.Int64("uid", uid),
		elog.Int("fitScore", profile.FitScore),
		elog.Int("threshold", g.threshold),
		elog.String("decision", decision.String()))
	return profile, decision, nil
}

// Decide 分数大于等于阈值就进入面试
func Decide(fitScore, threshold int) domain.Decision {
	if fitScore >= threshold {
		return domain.DecisionAdmit
	}
	return domain.DecisionReject
}

func toProfile(res ScoreResult) (domain.CandidateProfile, error) {
	var missing []string
	if res.Name == nil || strings.TrimSpace(*res.Name) == "" {
		missing = append(missing, "name")
	}
	if res.Skills == nil {
		missing = append(missing, "skills")
	}
	if res.YearsOfExperience == nil {
		missing = append(missing, "years_of_experience")
	}
	if res.FitScore == nil {
		missing = append(missing, "fit_score")
	}
	if len(missing) > 0 {
		return domain.CandidateProfile{}, fmt.Errorf("%w: 评分结果缺少字段 %s",
			domain.ErrBackendFailure, strings.Join(missing, ","))
	}
	return domain.CandidateProfile{
		Name:              strings.TrimSpace(*res.Name),
		Skills:            append([]string(nil), res.Skills...),
		YearsOfExperience: *res.YearsOfExperience,
		Education:         res.Education,
		FitScore:          ClampScore(*res.FitScore),
		Reasoning:         res.Reasoning,
		CompanyFit:        res.CompanyFit,
	}, nil
}

// ClampScore 四舍五入并限制在 [0, 100]
func ClampScore(score float64) int {
	if math.IsNaN(score) {
		return domain.MinFitScore
	}
	s := math.Round(score)
	if s < domain.MinFitScore {
		return domain.MinFitScore
	}
	if s > domain.MaxFitScore {
		return domain.MaxFitScore
	}
	return int(s)
}
