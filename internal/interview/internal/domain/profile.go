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

const (
	MinFitScore = 0
	MaxFitScore = 100
)

// CandidateProfile 简历评估的结果，生成之后不再修改。
// 重新上传简历会整体替换掉旧的
type CandidateProfile struct {
	Name              string
	Skills            []string
	YearsOfExperience float64
	Education         string
	// 0 到 100
	FitScore   int
	Reasoning  string
	CompanyFit string
}

func (p CandidateProfile) Clone() CandidateProfile {
	res := p
	res.Skills = append([]string(nil), p.Skills...)
	return res
}

type Decision uint8

const (
	DecisionReject Decision = iota
	DecisionAdmit
)

func (d Decision) String() string {
	if d == DecisionAdmit {
		return "admit"
	}
	return "reject"
}
