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
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cronJobRuns = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Namespace: "ai_interview",
	Name:      "cron_job_duration_seconds",
	Help:      "定时任务运行耗时",
}, []string{"job", "status"})

func initCronJobs(interviewModule *interview.Module) []ecron.Ecron {
	const key = "cron.sessionReaper"
	timeout := econf.GetDuration(key + ".timeout")
	return []ecron.Ecron{
		ecron.Load(key).Build(ecron.WithJob(funcJobWrapper(interviewModule.ReapJob, timeout))),
	}
}

// funcJobWrapper timeout 小于等于 0 的时候不限制运行时间
func funcJobWrapper(job ecron.NamedJob, timeout time.Duration) ecron.FuncJob {
	name := job.Name()
	return func(ctx context.Context) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		start := time.Now()
		elog.DefaultLogger.Debug("开始运行", elog.String("cronjob", name))
		err := job.Run(ctx)
		status := "ok"
		if err != nil {
			status = "error"
		}
		cronJobRuns.WithLabelValues(name, status).Observe(time.Since(start).Seconds())
		if err != nil {
			elog.DefaultLogger.Error("执行失败",
				elog.FieldErr(err),
				elog.String("cronjob", name))
			return err
		}
		elog.DefaultLogger.Debug("结束运行",
			elog.String("cronjob", name),
			elog.FieldKey("运行时间"),
			elog.FieldCost(time.Since(start)))
		return nil
	}
}
