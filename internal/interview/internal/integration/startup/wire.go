//go:build wireinject

package startup

import (
	"github.com/ecodeclub/aiinterview/internal/ai"
	"github.com/ecodeclub/aiinterview/internal/interview"
	testioc "github.com/ecodeclub/aiinterview/internal/test/ioc"
	"github.com/google/wire"
)

func InitModule(aiModule *ai.Module) *interview.Module {
	wire.Build(
		testioc.InitDB,
		testioc.InitCache,
		testioc.InitMQ,
		interview.InitModule,
	)
	return new(interview.Module)
}
