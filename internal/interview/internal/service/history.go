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

package service

import (
	"context"
	"strconv"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/event"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository"
	"github.com/ecodeclub/ekit/syncx"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRecentLimit = 10
	maxRecentLimit     = 100
	lockSegments       = 64
)

type HistoryService interface {
	// Append 写入一场结束的面试，同一个用户的写入是串行的
	Append(ctx context.Context, uid int64, report domain.InterviewReport) (int64, error)
	// ListRecent 最近的面试记录和总数，limit 小于等于 0 的时候使用默认值
	ListRecent(ctx context.Context, uid int64, limit int) ([]domain.HistoryEntry, int64, error)
	Stats(ctx context.Context, uid int64) (domain.HistoryStats, error)
	// Detail 不是自己的记录也返回 domain.ErrHistoryNotFound
	Detail(ctx context.Context, uid, id int64) (domain.HistoryEntry, error)
	RefreshStats(ctx context.Context, uid int64) error
}

type historyService struct {
	repo     repository.HistoryRepository
	producer event.CompletedEventProducer
	locks    *syncx.SegmentKeysLock
	logger   *elog.Component
}

func NewHistoryService(repo repository.HistoryRepository, producer event.CompletedEventProducer) HistoryService {
	return &historyService{
		repo:     repo,
		producer: producer,
		locks:    syncx.NewSegmentKeysLock(lockSegments),
		logger:   elog.DefaultLogger,
	}
}

func (s *historyService) Append(ctx context.Context, uid int64, report domain.InterviewReport) (int64, error) {
	entry := domain.HistoryEntry{
		Uid:             uid,
		Candidate:       report.Profile.Name,
		Company:         report.Setup.Company,
		Role:            report.Setup.Role,
		ExperienceLevel: report.Setup.ExperienceLevel,
		FitScore:        report.Profile.FitScore,
		NumQuestions:    report.Questions(),
		Recommendation:  report.Recommendation,
		Summary:         report.Summary,
		Transcript:      report.Conversation.Clone(),
	}
	key := strconv.FormatInt(uid, 10)
	s.locks.Lock(key)
	id, err := s.repo.Append(ctx, entry)
	s.locks.Unlock(key)
	if err != nil {
		return 0, err
	}
	err = s.producer.Produce(ctx, event.CompletedEvent{
		Uid:            uid,
		HistoryID:      id,
		Company:        entry.Company,
		FitScore:       entry.FitScore,
		Recommendation: string(entry.Recommendation),
	})
	if err != nil {
		// 记录已经写入，统计缓存等过期即可
		s.logger.Error("发送面试结束事件失败", elog.FieldErr(err),
			elog.Int64("uid", uid), elog.Int64("historyId", id))
	}
	return id, nil
}

func (s *historyService) ListRecent(ctx context.Context, uid int64, limit int) ([]domain.HistoryEntry, int64, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, maxRecentLimit)
	var (
		eg    errgroup.Group
		list  []domain.HistoryEntry
		total int64
	)
	eg.Go(func() error {
		var err error
		list, err = s.repo.ListRecent(ctx, uid, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx, uid)
		return err
	})
	return list, total, eg.Wait()
}

func (s *historyService) Stats(ctx context.Context, uid int64) (domain.HistoryStats, error) {
	return s.repo.Stats(ctx, uid)
}

func (s *historyService) Detail(ctx context.Context, uid, id int64) (domain.HistoryEntry, error) {
	return s.repo.Detail(ctx, uid, id)
}

func (s *historyService) RefreshStats(ctx context.Context, uid int64) error {
	_, err := s.repo.RefreshStats(ctx, uid)
	return err
}
