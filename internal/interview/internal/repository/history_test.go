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

package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository/cache"
	cachemocks "github.com/ecodeclub/aiinterview/internal/interview/internal/repository/cache/mocks"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository/dao"
	daomocks "github.com/ecodeclub/aiinterview/internal/interview/internal/repository/dao/mocks"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistoryRepository_Stats(t *testing.T) {
	testCases := []struct {
		name      string
		mock      func(ctrl *gomock.Controller) (dao.InterviewDAO, cache.HistoryCache)
		wantStats domain.HistoryStats
		wantErr   error
	}{
		{
			name: "命中缓存",
			mock: func(ctrl *gomock.Controller) (dao.InterviewDAO, cache.HistoryCache) {
				d := daomocks.NewMockInterviewDAO(ctrl)
				c := cachemocks.NewMockHistoryCache(ctrl)
				c.EXPECT().GetStats(gomock.Any(), int64(1)).
					Return(domain.HistoryStats{Total: 2, AvgScore: 70.5, MaxScore: 80, DistinctCompanies: 1}, nil)
				return d, c
			},
			wantStats: domain.HistoryStats{Total: 2, AvgScore: 70.5, MaxScore: 80, DistinctCompanies: 1},
		},
		{
			name: "缓存未命中，平均分保留一位小数",
			mock: func(ctrl *gomock.Controller) (dao.InterviewDAO, cache.HistoryCache) {
				d := daomocks.NewMockInterviewDAO(ctrl)
				c := cachemocks.NewMockHistoryCache(ctrl)
				c.EXPECT().GetStats(gomock.Any(), int64(1)).Return(domain.HistoryStats{}, cache.ErrStatsNotFound)
				d.EXPECT().Stats(gomock.Any(), int64(1)).Return(dao.InterviewStats{
					Total:             3,
					AvgScore:          76.66666,
					MaxScore:          90,
					DistinctCompanies: 2,
				}, nil)
				c.EXPECT().SetStats(gomock.Any(), int64(1), domain.HistoryStats{
					Total:             3,
					AvgScore:          76.7,
					MaxScore:          90,
					DistinctCompanies: 2,
				}).Return(nil)
				return d, c
			},
			wantStats: domain.HistoryStats{Total: 3, AvgScore: 76.7, MaxScore: 90, DistinctCompanies: 2},
		},
		{
			name: "缓存出错，写缓存也出错",
			mock: func(ctrl *gomock.Controller) (dao.InterviewDAO, cache.HistoryCache) {
				d := daomocks.NewMockInterviewDAO(ctrl)
				c := cachemocks.NewMockHistoryCache(ctrl)
				c.EXPECT().GetStats(gomock.Any(), int64(1)).Return(domain.HistoryStats{}, errors.New("redis down"))
				d.EXPECT().Stats(gomock.Any(), int64(1)).Return(dao.InterviewStats{}, nil)
				c.EXPECT().SetStats(gomock.Any(), int64(1), gomock.Any()).Return(errors.New("redis down"))
				return d, c
			},
			wantStats: domain.HistoryStats{},
		},
		{
			name: "数据库出错",
			mock: func(ctrl *gomock.Controller) (dao.InterviewDAO, cache.HistoryCache) {
				d := daomocks.NewMockInterviewDAO(ctrl)
				c := cachemocks.NewMockHistoryCache(ctrl)
				c.EXPECT().GetStats(gomock.Any(), int64(1)).Return(domain.HistoryStats{}, cache.ErrStatsNotFound)
				d.EXPECT().Stats(gomock.Any(), int64(1)).Return(dao.InterviewStats{}, errors.New("mock db error"))
				return d, c
			},
			wantErr: errors.New("mock db error"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repository.NewHistoryRepository(tc.mock(ctrl))
			stats, err := repo.Stats(context.Background(), 1)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.wantStats, stats)
		})
	}
}

func TestHistoryRepository_AppendAndDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := daomocks.NewMockInterviewDAO(ctrl)
	c := cachemocks.NewMockHistoryCache(ctrl)
	repo := repository.NewHistoryRepository(d, c)

	transcript := domain.Conversation{
		{Role: domain.RoleInterviewer, Content: "Tell me about Go."},
		{Role: domain.RoleCandidate, Content: "It has goroutines."},
	}
	var saved dao.Interview
	d.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, iv dao.Interview) (int64, error) {
		saved = iv
		return 10, nil
	})
	// 删除缓存失败不影响写入
	c.EXPECT().DelStats(gomock.Any(), int64(1)).Return(errors.New("redis down"))
	id, err := repo.Append(context.Background(), domain.HistoryEntry{
		Uid:             1,
		Candidate:       "Alice",
		Company:         "Google",
		Role:            "Backend Developer",
		ExperienceLevel: "Junior",
		FitScore:        82,
		NumQuestions:    1,
		Recommendation:  domain.RecommendationStrong,
		Summary:         "summary",
		Transcript:      transcript,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.Equal(t, sqlx.JsonColumn[[]dao.Utterance]{
		Val: []dao.Utterance{
			{Role: "interviewer", Content: "Tell me about Go."},
			{Role: "candidate", Content: "It has goroutines."},
		},
		Valid: true,
	}, saved.Transcript)
	assert.Equal(t, "Strongly Recommend", saved.Recommendation)

	saved.ID = 10
	saved.Ctime = 123
	d.EXPECT().FindByID(gomock.Any(), int64(1), int64(10)).Return(saved, nil)
	entry, err := repo.Detail(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.HistoryEntry{
		ID:              10,
		Uid:             1,
		Candidate:       "Alice",
		Company:         "Google",
		Role:            "Backend Developer",
		ExperienceLevel: "Junior",
		FitScore:        82,
		NumQuestions:    1,
		Recommendation:  domain.RecommendationStrong,
		Summary:         "summary",
		Transcript:      transcript,
		Ctime:           123,
	}, entry)

	d.EXPECT().FindByID(gomock.Any(), int64(2), int64(10)).Return(dao.Interview{}, dao.ErrRecordNotFound)
	_, err = repo.Detail(context.Background(), 2, 10)
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}
