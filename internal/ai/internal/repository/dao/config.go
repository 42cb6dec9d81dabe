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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

type ConfigDAO interface {
	GetConfig(ctx context.Context, biz string) (BizConfig, error)
	// InitConfigs 只写入还不存在的配置，已经存在的不会被覆盖
	InitConfigs(ctx context.Context, cfgs []BizConfig) error
}

type GORMConfigDAO struct {
	db *egorm.Component
}

func NewGORMConfigDAO(db *egorm.Component) ConfigDAO {
	return &GORMConfigDAO{db: db}
}

func (dao *GORMConfigDAO) GetConfig(ctx context.Context, biz string) (BizConfig, error) {
	var res BizConfig
	err := dao.db.WithContext(ctx).Where("biz = ?", biz).First(&res).Error
	return res, err
}

func (dao *GORMConfigDAO) InitConfigs(ctx context.Context, cfgs []BizConfig) error {
	if len(cfgs) == 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	for i := range cfgs {
		cfgs[i].Ctime = now
		cfgs[i].Utime = now
	}
	return dao.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "biz"}},
		DoNothing: true,
	}).Create(&cfgs).Error
}

type BizConfig struct {
	Id          int64   `gorm:"primaryKey;autoIncrement;comment:AI biz 配置表ID"`
	Biz         string  `gorm:"type:varchar(256);uniqueIndex;not null;comment:业务类型名"`
	Platform    string  `gorm:"type:varchar(64);not null;default:'';comment:使用的平台"`
	MaxInput    int     `gorm:"comment:最大输入长度"`
	Model       string  `gorm:"type:varchar(256)"`
	Price       int64
	Temperature float64
	TopP        float64
	// 系统 prompt
	SystemPrompt   string `gorm:"type:text"`
	PromptTemplate string `gorm:"type:text"`
	Ctime          int64
	Utime          int64
}

func (c BizConfig) TableName() string {
	return "ai_biz_configs"
}
