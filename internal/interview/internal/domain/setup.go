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
	"fmt"
	"slices"
	"strconv"
)

const (
	MinQuestionCount = 1
	MaxQuestionCount = 20
)

// ExperienceLevels 可选的经验等级
var ExperienceLevels = []string{"Intern", "Junior", "Mid-Level", "Senior"}

// RoleCategory 岗位大类，用来缩小岗位的候选范围
type RoleCategory struct {
	Name  string
	Roles []string
}

var RoleCategories = []RoleCategory{
	{Name: "Engineering", Roles: []string{"Backend Developer", "Frontend Developer", "Full Stack Developer", "Mobile Developer"}},
	{Name: "Data", Roles: []string{"Data Scientist", "Data Engineer", "Machine Learning Engineer"}},
	{Name: "Infrastructure", Roles: []string{"DevOps Engineer", "Site Reliability Engineer", "Cloud Engineer"}},
	{Name: "Product", Roles: []string{"Product Manager", "QA Engineer"}},
}

// QuestionCountOptions 前端展示的题目数量按钮，其它在范围内的数字也可以
var QuestionCountOptions = []int{3, 5, 7, 10}

// Setup 面试的基础配置，在配置阶段逐项填写
type Setup struct {
	Company         string
	ExperienceLevel string
	RoleCategory    string
	Role            string
	QuestionCount   int
}

func (s Setup) Complete() bool {
	return s.Company != "" &&
		s.ExperienceLevel != "" &&
		s.RoleCategory != "" &&
		s.Role != "" &&
		s.QuestionCount >= MinQuestionCount
}

// Options 当前阶段可以选择的值
func (s Setup) Options(stage Stage, companies []string) []string {
	switch stage {
	case StageSetupCompany:
		return companies
	case StageSetupExperience:
		return ExperienceLevels
	case StageSetupRoleCategory:
		res := make([]string, 0, len(RoleCategories))
		for _, c := range RoleCategories {
			res = append(res, c.Name)
		}
		return res
	case StageSetupRole:
		for _, c := range RoleCategories {
			if c.Name == s.RoleCategory {
				return c.Roles
			}
		}
		return nil
	case StageSetupQuestions:
		res := make([]string, 0, len(QuestionCountOptions))
		for _, n := range QuestionCountOptions {
			res = append(res, strconv.Itoa(n))
		}
		return res
	default:
		return nil
	}
}

// Apply 把 stage 阶段的选择写入配置，返回新的配置。
// 校验失败的时候原配置不变
func (s Setup) Apply(stage Stage, value string, companies []string) (Setup, error) {
	switch stage {
	case StageSetupQuestions:
		n, err := strconv.Atoi(value)
		if err != nil || n < MinQuestionCount || n > MaxQuestionCount {
			return s, fmt.Errorf("%w: 题目数量必须在 %d 到 %d 之间, 实际 %q",
				ErrInput, MinQuestionCount, MaxQuestionCount, value)
		}
		s.QuestionCount = n
		return s, nil
	case StageSetupCompany, StageSetupExperience, StageSetupRoleCategory, StageSetupRole:
		if !slices.Contains(s.Options(stage, companies), value) {
			return s, fmt.Errorf("%w: 阶段 %s 不支持选项 %q", ErrInput, stage, value)
		}
	default:
		return s, fmt.Errorf("%w: 阶段 %s 不接受选择", ErrInput, stage)
	}
	switch stage {
	case StageSetupCompany:
		s.Company = value
	case StageSetupExperience:
		s.ExperienceLevel = value
	case StageSetupRoleCategory:
		s.RoleCategory = value
		s.Role = ""
	case StageSetupRole:
		s.Role = value
	}
	return s, nil
}
