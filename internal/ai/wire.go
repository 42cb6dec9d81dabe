//go:build wireinject

package ai

import (
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/repository/cache"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/config"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/log"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler/record"
	"github.com/ecodeclub/ecache"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, ec ecache.Cache) *Module {
	wire.Build(
		llm.NewLLMService,
		repository.NewLLMLogRepo,
		InitConfigRepository,
		cache.NewConfigECache,

		initConfigDAO,
		initLLMRecordDAO,

		config.NewBuilder,
		log.NewHandler,
		record.NewHandler,

		InitCommonHandlers,
		InitPlatformRouter,
		InitHandlerFacade,
		InitSpeech,

		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}
