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

// HistoryEntry 已经结束的面试，写入之后只读
type HistoryEntry struct {
	ID              int64
	Uid             int64
	Candidate       string
	Company         string
	Role            string
	ExperienceLevel string
	FitScore        int
	NumQuestions    int
	Recommendation  Recommendation
	Summary         string
	Transcript      Conversation
	Ctime           int64
}

// HistoryStats 用户维度的统计
type HistoryStats struct {
	Total int64
	// 保留一位小数
	AvgScore          float64
	MaxScore          int
	DistinctCompanies int64
}
