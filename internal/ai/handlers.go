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

package ai

import (
	"context"
	"sync"
	"time"

	"github.com/ecodeclub/aiinterview/internal/ai/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository/cache"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository/dao"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/biz"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/config"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/log"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/platform"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/platform/openai"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/platform/zhipu"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/record"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/speech"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

var daoOnce = sync.Once{}

func InitTableOnce(db *egorm.Component) {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func initConfigDAO(db *egorm.Component) dao.ConfigDAO {
	InitTableOnce(db)
	return dao.NewGORMConfigDAO(db)
}

func initLLMRecordDAO(db *egorm.Component) dao.LLMRecordDAO {
	InitTableOnce(db)
	return dao.NewGORMLLMRecordDAO(db)
}

// InitConfigRepository 把 ai.bizConfigs 里面的配置写入数据库，已经存在的业务不会被覆盖
func InitConfigRepository(d dao.ConfigDAO, c cache.ConfigCache) repository.ConfigRepository {
	type BizConfig struct {
		Biz            string  `yaml:"biz"`
		Platform       string  `yaml:"platform"`
		Model          string  `yaml:"model"`
		Price          int64   `yaml:"price"`
		Temperature    float64 `yaml:"temperature"`
		TopP           float64 `yaml:"topP"`
		SystemPrompt   string  `yaml:"systemPrompt"`
		MaxInput       int     `yaml:"maxInput"`
		PromptTemplate string  `yaml:"promptTemplate"`
	}
	repo := repository.NewCachedConfigRepository(d, c)
	var cfgs []BizConfig
	err := econf.UnmarshalKey("ai.bizConfigs", &cfgs)
	if err != nil {
		panic(err)
	}
	if len(cfgs) == 0 {
		return repo
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = repo.InitConfigs(ctx, slice.Map(cfgs, func(_ int, src BizConfig) domain.BizConfig {
		return domain.BizConfig{
			Biz:            src.Biz,
			Platform:       src.Platform,
			Model:          src.Model,
			Price:          src.Price,
			Temperature:    src.Temperature,
			TopP:           src.TopP,
			SystemPrompt:   src.SystemPrompt,
			MaxInput:       src.MaxInput,
			PromptTemplate: src.PromptTemplate,
		}
	}))
	if err != nil {
		panic(err)
	}
	return repo
}

// InitPlatformRouter 没有配置 apikey 的平台不会注册
func InitPlatformRouter() *platform.Router {
	type Config struct {
		Default string `yaml:"default"`
		OpenAI  struct {
			APIKey  string `yaml:"apikey"`
			BaseURL string `yaml:"baseURL"`
		} `yaml:"openai"`
		Zhipu struct {
			APIKey string `yaml:"apikey"`
		} `yaml:"zhipu"`
	}
	var cfg Config
	err := econf.UnmarshalKey("ai", &cfg)
	if err != nil {
		panic(err)
	}
	platforms := map[string]handler.Handler{}
	if cfg.OpenAI.APIKey != "" {
		platforms[domain.PlatformOpenAI] = openai.NewHandler(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	}
	if cfg.Zhipu.APIKey != "" {
		h, err := zhipu.NewHandler(cfg.Zhipu.APIKey)
		if err != nil {
			panic(err)
		}
		platforms[domain.PlatformZhipu] = h
	}
	if len(platforms) == 0 {
		elog.DefaultLogger.Warn("没有配置任何 LLM 平台，所有的 LLM 调用都会失败")
	}
	if cfg.Default == "" {
		cfg.Default = domain.PlatformOpenAI
	}
	return platform.NewRouter(platforms, cfg.Default)
}

func InitCommonHandlers(log *log.HandlerBuilder,
	cfg *config.HandlerBuilder,
	record *record.HandlerBuilder) []handler.Builder {
	// log -> cfg -> record -> platform
	return []handler.Builder{log, cfg, record}
}

func InitHandlerFacade(common []handler.Builder, router *platform.Router) handler.Handler {
	bizs := []string{
		domain.BizResumeScore,
		domain.BizInterviewQuestion,
		domain.BizInterviewSummary,
	}
	handlers := make(map[string]handler.Handler, len(bizs))
	for _, name := range bizs {
		handlers[name] = biz.NewCombinedBizHandler(name, common, router)
	}
	return biz.NewHandler(handlers)
}

// InitSpeech 默认复用 ai.openai 的配置，都没有配置的时候不提供语音能力
func InitSpeech() SpeechService {
	var cfg speech.Config
	err := econf.UnmarshalKey("ai.speech", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = econf.GetString("ai.openai.apikey")
		if cfg.BaseURL == "" {
			cfg.BaseURL = econf.GetString("ai.openai.baseURL")
		}
	}
	if cfg.APIKey == "" {
		elog.DefaultLogger.Warn("没有配置语音服务，语音消息不可用")
		return speech.NopService{}
	}
	return speech.NewOpenAIService(cfg)
}
