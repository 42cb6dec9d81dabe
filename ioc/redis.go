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

package ioc

import (
	"context"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ecache/redis"
	"github.com/gotomicro/ego/core/econf"
	redisv9 "github.com/redis/go-redis/v9"
)

func InitRedis() redisv9.Cmdable {
	type Config struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}
	var cfg Config
	err := econf.UnmarshalKey("redis", &cfg)
	if err != nil {
		panic(err)
	}
	client := redisv9.NewClient(&redisv9.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err = waitFor("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		panic(err)
	}
	return client
}

// InitCache 统计数据和 biz 配置都放在 aiinterview: 前缀下面
func InitCache(cmd redisv9.Cmdable) ecache.Cache {
	return &ecache.NamespaceCache{
		C:         redis.NewCache(cmd),
		Namespace: "aiinterview:",
	}
}
