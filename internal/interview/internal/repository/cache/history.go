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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

var ErrStatsNotFound = errors.New("统计数据没找到")

const statsExpiration = 30 * time.Minute

//go:generate mockgen -source=./history.go -destination=./mocks/history.mock.go -package=cachemocks
type HistoryCache interface {
	GetStats(ctx context.Context, uid int64) (domain.HistoryStats, error)
	SetStats(ctx context.Context, uid int64, stats domain.HistoryStats) error
	DelStats(ctx context.Context, uid int64) error
}

type HistoryECache struct {
	ec ecache.Cache
}

func NewHistoryECache(ec ecache.Cache) HistoryCache {
	return &HistoryECache{
		ec: &ecache.NamespaceCache{
			Namespace: "interview:",
			C:         ec,
		},
	}
}

func (h *HistoryECache) GetStats(ctx context.Context, uid int64) (domain.HistoryStats, error) {
	val := h.ec.Get(ctx, h.statsKey(uid))
	if val.KeyNotFound() {
		return domain.HistoryStats{}, ErrStatsNotFound
	}
	if val.Err != nil {
		return domain.HistoryStats{}, errors.Wrap(val.Err, "查询缓存出错")
	}
	var stats domain.HistoryStats
	str, err := val.String()
	if err != nil {
		return domain.HistoryStats{}, errors.Wrap(err, "缓存数据类型错误")
	}
	err = json.Unmarshal([]byte(str), &stats)
	if err != nil {
		return domain.HistoryStats{}, errors.Wrap(err, "反序列化统计数据失败")
	}
	return stats, nil
}

func (h *HistoryECache) SetStats(ctx context.Context, uid int64, stats domain.HistoryStats) error {
	val, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "序列化统计数据失败")
	}
	return h.ec.Set(ctx, h.statsKey(uid), string(val), statsExpiration)
}

func (h *HistoryECache) DelStats(ctx context.Context, uid int64) error {
	_, err := h.ec.Delete(ctx, h.statsKey(uid))
	return err
}

func (h *HistoryECache) statsKey(uid int64) string {
	return fmt.Sprintf("stats:%d", uid)
}
