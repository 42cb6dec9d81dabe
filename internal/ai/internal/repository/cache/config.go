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

	"github.com/ecodeclub/aiinterview/internal/ai/internal/domain"
	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

var ErrConfigNotFound = errors.New("业务配置没找到")

// 配置很少修改，改了之后最多等待这么久
const configExpiration = 10 * time.Minute

type ConfigCache interface {
	Get(ctx context.Context, biz string) (domain.BizConfig, error)
	Set(ctx context.Context, cfg domain.BizConfig) error
}

type ConfigECache struct {
	ec ecache.Cache
}

func NewConfigECache(ec ecache.Cache) ConfigCache {
	return &ConfigECache{
		ec: &ecache.NamespaceCache{
			Namespace: "ai:",
			C:         ec,
		},
	}
}

func (c *ConfigECache) Get(ctx context.Context, biz string) (domain.BizConfig, error) {
	val := c.ec.Get(ctx, c.key(biz))
	if val.KeyNotFound() {
		return domain.BizConfig{}, ErrConfigNotFound
	}
	if val.Err != nil {
		return domain.BizConfig{}, errors.Wrap(val.Err, "查询缓存出错")
	}
	str, err := val.String()
	if err != nil {
		return domain.BizConfig{}, errors.Wrap(err, "缓存数据类型错误")
	}
	var cfg domain.BizConfig
	err = json.Unmarshal([]byte(str), &cfg)
	if err != nil {
		return domain.BizConfig{}, errors.Wrap(err, "反序列化业务配置失败")
	}
	return cfg, nil
}

func (c *ConfigECache) Set(ctx context.Context, cfg domain.BizConfig) error {
	val, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "序列化业务配置失败")
	}
	return c.ec.Set(ctx, c.key(cfg.Biz), string(val), configExpiration)
}

func (c *ConfigECache) key(biz string) string {
	return fmt.Sprintf("biz_config:%s", biz)
}
