//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/aiinterview/internal/ai"
	"github.com/ecodeclub/aiinterview/internal/interview"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		ai.InitModule,
		interview.InitModule,
		wire.FieldsOf(new(*interview.Module), "Hdl"),
		InitSession,
		initGinxServer,
		initCronJobs,
		initMQConsumers)
	return new(App), nil
}
