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
	"database/sql"
	"fmt"
	"time"

	"github.com/ecodeclub/aiinterview/internal/pkg/database"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

func InitDB() *egorm.Component {
	WaitForDBSetup(econf.GetString("mysql.dsn"))
	db := egorm.Load("mysql").Build()
	err := db.Use(database.NewGormTracingPlugin())
	if err != nil {
		panic(err)
	}
	return db
}

// WaitForDBSetup 本地启动的时候 mysql 往往还没有就绪
func WaitForDBSetup(dsn string) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		panic(err)
	}
	defer sqlDB.Close()
	if err = waitFor("mysql", sqlDB.PingContext); err != nil {
		panic(err)
	}
}

// waitFor 按照指数退避重试 ping，直到成功或者重试次数耗尽
func waitFor(name string, ping func(ctx context.Context) error) error {
	const (
		initInterval = time.Second
		maxInterval  = 10 * time.Second
		maxRetries   = 10
		timeout      = 5 * time.Second
	)
	strategy, err := retry.NewExponentialBackoffRetryStrategy(initInterval, maxInterval, maxRetries)
	if err != nil {
		return err
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = ping(ctx)
		cancel()
		if err == nil {
			return nil
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("等待 %s 就绪重试失败: %w", name, err)
		}
		elog.DefaultLogger.Warn("等待依赖就绪", elog.String("name", name), elog.FieldErr(err))
		time.Sleep(next)
	}
}
