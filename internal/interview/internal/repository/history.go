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

package repository

import (
	"context"
	"errors"
	"math"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository/cache"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./history.go -destination=./mocks/history.mock.go -package=repomocks
type HistoryRepository interface {
	Append(ctx context.Context, entry domain.HistoryEntry) (int64, error)
	ListRecent(ctx context.Context, uid int64, limit int) ([]domain.HistoryEntry, error)
	Count(ctx context.Context, uid int64) (int64, error)
	Detail(ctx context.Context, uid, id int64) (domain.HistoryEntry, error)
	// Stats 优先读缓存
	Stats(ctx context.Context, uid int64) (domain.HistoryStats, error)
	// RefreshStats 重新计算并写入缓存
	RefreshStats(ctx context.Context, uid int64) (domain.HistoryStats, error)
}

type historyRepository struct {
	dao    dao.InterviewDAO
	cache  cache.HistoryCache
	logger *elog.Component
}

func NewHistoryRepository(d dao.InterviewDAO, c cache.HistoryCache) HistoryRepository {
	return &historyRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *historyRepository) Append(ctx context.Context, entry domain.HistoryEntry) (int64, error) {
	id, err := r.dao.Insert(ctx, r.toEntity(entry))
	if err != nil {
		return 0, err
	}
	if err = r.cache.DelStats(ctx, entry.Uid); err != nil {
		// 缓存有过期时间，后面还有消费者刷新
		r.logger.Warn("删除统计缓存失败", elog.FieldErr(err), elog.Int64("uid", entry.Uid))
	}
	return id, nil
}

func (r *historyRepository) ListRecent(ctx context.Context, uid int64, limit int) ([]domain.HistoryEntry, error) {
	list, err := r.dao.FindRecent(ctx, uid, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.Interview) domain.HistoryEntry {
		return r.toDomain(src)
	}), nil
}

func (r *historyRepository) Count(ctx context.Context, uid int64) (int64, error) {
	return r.dao.Count(ctx, uid)
}

func (r *historyRepository) Detail(ctx context.Context, uid, id int64) (domain.HistoryEntry, error) {
	iv, err := r.dao.FindByID(ctx, uid, id)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return domain.HistoryEntry{}, domain.ErrHistoryNotFound
	}
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	return r.toDomain(iv), nil
}

func (r *historyRepository) Stats(ctx context.Context, uid int64) (domain.HistoryStats, error) {
	stats, err := r.cache.GetStats(ctx, uid)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, cache.ErrStatsNotFound) {
		r.logger.Warn("读取统计缓存失败", elog.FieldErr(err), elog.Int64("uid", uid))
	}
	return r.RefreshStats(ctx, uid)
}

func (r *historyRepository) RefreshStats(ctx context.Context, uid int64) (domain.HistoryStats, error) {
	res, err := r.dao.Stats(ctx, uid)
	if err != nil {
		return domain.HistoryStats{}, err
	}
	stats := domain.HistoryStats{
		Total:             res.Total,
		AvgScore:          math.Round(res.AvgScore*10) / 10,
		MaxScore:          res.MaxScore,
		DistinctCompanies: res.DistinctCompanies,
	}
	if err = r.cache.SetStats(ctx, uid, stats); err != nil {
		r.logger.Warn("写入统计缓存失败", elog.FieldErr(err), elog.Int64("uid", uid))
	}
	return stats, nil
}

func (r *historyRepository) toEntity(entry domain.HistoryEntry) dao.Interview {
	return dao.Interview{
		Uid:             entry.Uid,
		Candidate:       entry.Candidate,
		Company:         entry.Company,
		Role:            entry.Role,
		ExperienceLevel: entry.ExperienceLevel,
		FitScore:        entry.FitScore,
		NumQuestions:    entry.NumQuestions,
		Recommendation:  string(entry.Recommendation),
		Summary:         entry.Summary,
		Transcript: sqlx.JsonColumn[[]dao.Utterance]{
			Val: slice.Map(entry.Transcript, func(_ int, src domain.Utterance) dao.Utterance {
				return dao.Utterance{Role: string(src.Role), Content: src.Content}
			}),
			Valid: len(entry.Transcript) != 0,
		},
	}
}

func (r *historyRepository) toDomain(iv dao.Interview) domain.HistoryEntry {
	var transcript domain.Conversation
	if iv.Transcript.Valid {
		transcript = slice.Map(iv.Transcript.Val, func(_ int, src dao.Utterance) domain.Utterance {
			return domain.Utterance{Role: domain.Role(src.Role), Content: src.Content}
		})
	}
	return domain.HistoryEntry{
		ID:              iv.ID,
		Uid:             iv.Uid,
		Candidate:       iv.Candidate,
		Company:         iv.Company,
		Role:            iv.Role,
		ExperienceLevel: iv.ExperienceLevel,
		FitScore:        iv.FitScore,
		NumQuestions:    iv.NumQuestions,
		Recommendation:  domain.Recommendation(iv.Recommendation),
		Summary:         iv.Summary,
		Transcript:      transcript,
		Ctime:           iv.Ctime,
	}
}
