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

package interview

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gotomicro/ego/core/econf"
)

type Config struct {
	// 进入面试的最低分数，等于也可以进入
	Threshold        int      `yaml:"threshold"`
	DefaultQuestions int      `yaml:"defaultQuestions"`
	MinAudioBytes    int      `yaml:"minAudioBytes"`
	ReportDir        string   `yaml:"reportDir"`
	DocxTemplate     string   `yaml:"docxTemplate"`
	Companies        []string `yaml:"companies"`
	MaxUploadBytes   int64    `yaml:"maxUploadBytes"`
	MailboxSize      int      `yaml:"mailboxSize"`
	NodeID           int64    `yaml:"nodeID"`

	CallTimeout time.Duration `yaml:"-"`
	IdleTimeout time.Duration `yaml:"-"`
}

// InitConfig 读取 interview 配置，没有配置的字段使用默认值
func InitConfig() Config {
	cfg := Config{
		Threshold:        50,
		DefaultQuestions: 5,
		MinAudioBytes:    1000,
		ReportDir:        filepath.Join(os.TempDir(), "aiinterview", "reports"),
		Companies:        []string{"Google", "Amazon", "Microsoft", "Meta", "Apple", "Netflix"},
		MaxUploadBytes:   10 << 20,
		MailboxSize:      16,
		NodeID:           1,
		CallTimeout:      60 * time.Second,
		IdleTimeout:      30 * time.Minute,
	}
	err := econf.UnmarshalKey("interview", &cfg)
	if err != nil {
		panic(err)
	}
	if d := econf.GetDuration("interview.callTimeout"); d > 0 {
		cfg.CallTimeout = d
	}
	if d := econf.GetDuration("interview.idleTimeout"); d > 0 {
		cfg.IdleTimeout = d
	}
	return cfg
}
