//go:build wireinject

package interview

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/aiinterview/internal/ai"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/event"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/job"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository/cache"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/repository/dao"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/llm"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/orchestrator"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/web"
	"github.com/ecodeclub/aiinterview/internal/pkg/document"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/client/ehttp"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	aiModule *ai.Module) *Module {
	wire.Build(
		InitConfig,
		initInterviewDAO,
		cache.NewHistoryECache,
		repository.NewHistoryRepository,
		initCompletedEventProducer,
		service.NewHistoryService,
		initStatsConsumer,

		llm.NewScorer,
		llm.NewDialogue,
		initExtractor,
		initOrchestrator,
		initHandler,
		initReapJob,

		wire.FieldsOf(new(*ai.Module), "Svc", "Speech"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

func initInterviewDAO(db *egorm.Component) dao.InterviewDAO {
	err := dao.InitTables(db)
	if err != nil {
		panic(err)
	}
	return dao.NewGORMInterviewDAO(db)
}

func initCompletedEventProducer(q mq.MQ) event.CompletedEventProducer {
	producer, err := event.NewCompletedEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

func initStatsConsumer(svc service.HistoryService, q mq.MQ) *event.StatsConsumer {
	c, err := event.NewStatsConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return c
}

// initExtractor 配置了 document.pdf.addr 才支持 pdf
func initExtractor() *document.Extractor {
	if econf.GetString("document.pdf.addr") == "" {
		return document.NewExtractor(nil)
	}
	client := ehttp.Load("document.pdf").Build()
	path := econf.GetString("document.pdf.path")
	if path == "" {
		path = "/extract"
	}
	return document.NewExtractor(document.NewRemotePDFParser(client.Client, path))
}

func initOrchestrator(cfg Config,
	scorer *llm.Scorer,
	dialogue *llm.Dialogue,
	extractor *document.Extractor,
	speech ai.SpeechService,
	historySvc service.HistoryService) *orchestrator.Orchestrator {
	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		panic(err)
	}
	var opts []orchestrator.Option
	if cfg.DocxTemplate != "" {
		opts = append(opts, orchestrator.WithExporter(engine.NewDocxReportWriter(cfg.DocxTemplate, cfg.ReportDir)))
	}
	return orchestrator.NewOrchestrator(orchestrator.Config{
		Companies:        cfg.Companies,
		DefaultQuestions: cfg.DefaultQuestions,
		MinAudioBytes:    cfg.MinAudioBytes,
		CallTimeout:      cfg.CallTimeout,
		MailboxSize:      cfg.MailboxSize,
	}, node,
		gate.NewGate(scorer, cfg.Threshold),
		dialogue,
		engine.NewTextReportWriter(cfg.ReportDir),
		extractor,
		speech,
		speech,
		historySvc,
		opts...)
}

func initHandler(orch *orchestrator.Orchestrator, svc service.HistoryService, cfg Config) *web.Handler {
	return web.NewHandler(orch, svc, cfg.MaxUploadBytes)
}

func initReapJob(orch *orchestrator.Orchestrator, cfg Config) *job.ReapIdleSessionsJob {
	return job.NewReapIdleSessionsJob(orch, cfg.IdleTimeout)
}
