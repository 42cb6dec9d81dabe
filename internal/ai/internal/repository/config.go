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

	"github.com/ecodeclub/aiinterview/internal/ai/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository/cache"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./config.go -destination=./mocks/config.mock.go -package=repomocks
type ConfigRepository interface {
	GetConfig(ctx context.Context, biz string) (domain.BizConfig, error)
	InitConfigs(ctx context.Context, cfgs []domain.BizConfig) error
}

// CachedConfigRepository 每一次调用 LLM 都要读配置，所以一定要有缓存
type CachedConfigRepository struct {
	dao    dao.ConfigDAO
	cache  cache.ConfigCache
	logger *elog.Component
}

func NewCachedConfigRepository(d dao.ConfigDAO, c cache.ConfigCache) ConfigRepository {
	return &CachedConfigRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (repo *CachedConfigRepository) GetConfig(ctx context.Context, biz string) (domain.BizConfig, error) {
	cfg, err := repo.cache.Get(ctx, biz)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, cache.ErrConfigNotFound) {
		repo.logger.Warn("读取业务配置缓存失败", elog.FieldErr(err), elog.String("biz", biz))
	}
	res, err := repo.dao.GetConfig(ctx, biz)
	if err != nil {
		return domain.BizConfig{}, err
	}
	cfg = repo.toDomain(res)
	if err = repo.cache.Set(ctx, cfg); err != nil {
		repo.logger.Warn("写入业务配置缓存失败", elog.FieldErr(err), elog.String("biz", biz))
	}
	return cfg, nil
}

func (repo *CachedConfigRepository) InitConfigs(ctx context.Context, cfgs []domain.BizConfig) error {
	return repo.dao.InitConfigs(ctx, slice.Map(cfgs, func(_ int, src domain.BizConfig) dao.BizConfig {
		return repo.toEntity(src)
	}))
}

func (repo *CachedConfigRepository) toDomain(c dao.BizConfig) domain.BizConfig {
	return domain.BizConfig{
		Id:             c.Id,
		Biz:            c.Biz,
		Platform:       c.Platform,
		Model:          c.Model,
		Price:          c.Price,
		Temperature:    c.Temperature,
		TopP:           c.TopP,
		SystemPrompt:   c.SystemPrompt,
		MaxInput:       c.MaxInput,
		PromptTemplate: c.PromptTemplate,
		Utime:          c.Utime,
	}
}

func (repo *CachedConfigRepository) toEntity(c domain.BizConfig) dao.BizConfig {
	return dao.BizConfig{
		Biz:            c.Biz,
		Platform:       c.Platform,
		Model:          c.Model,
		Price:          c.Price,
		Temperature:    c.Temperature,
		TopP:           c.TopP,
		SystemPrompt:   c.SystemPrompt,
		MaxInput:       c.MaxInput,
		PromptTemplate: c.PromptTemplate,
	}
}
