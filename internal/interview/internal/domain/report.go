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
	"regexp"
	"strings"
)

type Recommendation string

const (
	RecommendationStrong    Recommendation = "Strongly Recommend"
	RecommendationRecommend Recommendation = "Recommend"
	RecommendationConsider  Recommendation = "Consider"
	RecommendationReject    Recommendation = "Do Not Recommend"
)

var (
	finalVerdictExpr = regexp.MustCompile(`(?i)final\s+recommendation[^:：\n]*[:：]?`)
	verdictExpr      = regexp.MustCompile(`(?i)recommendation\W*[:：]`)
)

// ParseRecommendation 从总结里面识别推荐结论，识别不出来就是 Consider。
// 优先看最后一个 "Final Recommendation" 结论行，其次是最后一个 "Recommendation:" 行，都没有才在全文里面找
func ParseRecommendation(text string) Recommendation {
	for _, expr := range []*regexp.Regexp{finalVerdictExpr, verdictExpr} {
		if verdict, ok := verdictLine(expr, text); ok {
			if r, found := matchRecommendation(verdict); found {
				return r
			}
		}
	}
	if r, found := matchRecommendation(text); found {
		return r
	}
	return RecommendationConsider
}

// verdictLine 取最后一个标题后面的内容，标题那一行是空的就取下一个非空行
func verdictLine(expr *regexp.Regexp, text string) (string, bool) {
	locs := expr.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return "", false
	}
	rest := text[locs[len(locs)-1][1]:]
	for _, line := range strings.Split(rest, "\n") {
		line = strings.Trim(line, " \t\r*#-")
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// matchRecommendation 按照从长到短的顺序匹配，避免 "Do Not Recommend" 被识别成 "Recommend"
func matchRecommendation(text string) (Recommendation, bool) {
	lower := strings.ToLower(text)
	for _, r := range []Recommendation{
		RecommendationReject,
		RecommendationStrong,
		RecommendationConsider,
		RecommendationRecommend,
	} {
		if strings.Contains(lower, strings.ToLower(string(r))) {
			return r, true
		}
	}
	return "", false
}

// Ratings 子项评分，1 到 10，0 代表没有给出
type Ratings struct {
	Technical     int
	Communication int
	Overall       int
}

// InterviewReport 面试报告，生成之后只读
type InterviewReport struct {
	Profile        CandidateProfile
	Setup          Setup
	Conversation   Conversation
	Summary        string
	Ratings        Ratings
	Recommendation Recommendation
	// 毫秒
	Ctime int64
}

// Questions 面试官一共问了几个问题
func (r InterviewReport) Questions() int {
	cnt := 0
	for _, u := range r.Conversation {
		if u.Role == RoleInterviewer {
			cnt++
		}
	}
	return cnt
}
