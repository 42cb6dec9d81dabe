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

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

//go:generate mockgen -source=./interview.go -destination=./mocks/interview.mock.go -package=daomocks
type InterviewDAO interface {
	Insert(ctx context.Context, iv Interview) (int64, error)
	FindRecent(ctx context.Context, uid int64, limit int) ([]Interview, error)
	Count(ctx context.Context, uid int64) (int64, error)
	FindByID(ctx context.Context, uid, id int64) (Interview, error)
	Stats(ctx context.Context, uid int64) (InterviewStats, error)
}

type GORMInterviewDAO struct {
	db *egorm.Component
}

func NewGORMInterviewDAO(db *egorm.Component) InterviewDAO {
	return &GORMInterviewDAO{db: db}
}

func (g *GORMInterviewDAO) Insert(ctx context.Context, iv Interview) (int64, error) {
	now := time.Now().UnixMilli()
	iv.Ctime = now
	iv.Utime = now
	err := g.db.WithContext(ctx).Create(&iv).Error
	return iv.ID, errors.WithStack(err)
}

func (g *GORMInterviewDAO) FindRecent(ctx context.Context, uid int64, limit int) ([]Interview, error) {
	var res []Interview
	err := g.db.WithContext(ctx).
		Where("uid = ?", uid).
		// 同一毫秒写入的记录按照 id 排序
		Order("ctime DESC, id DESC").
		Limit(limit).
		Find(&res).Error
	return res, errors.WithStack(err)
}

func (g *GORMInterviewDAO) Count(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Interview{}).Where("uid = ?", uid).Count(&count).Error
	return count, errors.WithStack(err)
}

// FindByID 只能查到自己的记录
func (g *GORMInterviewDAO) FindByID(ctx context.Context, uid, id int64) (Interview, error) {
	var res Interview
	err := g.db.WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&res).Error
	return res, err
}

func (g *GORMInterviewDAO) Stats(ctx context.Context, uid int64) (InterviewStats, error) {
	var res InterviewStats
	err := g.db.WithContext(ctx).Model(&Interview{}).
		Select("COUNT(*) AS total, "+
			"COALESCE(AVG(fit_score), 0) AS avg_score, "+
			"COALESCE(MAX(fit_score), 0) AS max_score, "+
			"COUNT(DISTINCT company) AS distinct_companies").
		Where("uid = ?", uid).
		Scan(&res).Error
	return res, errors.WithStack(err)
}

// Interview 一场已经结束的模拟面试
type Interview struct {
	ID              int64                        `gorm:"primaryKey;autoIncrement;comment:自增ID"`
	Uid             int64                        `gorm:"not null;index:idx_uid_ctime,priority:1;comment:用户UID"`
	Candidate       string                       `gorm:"type:varchar(255);not null;default:'';comment:简历中的候选人姓名"`
	Company         string                       `gorm:"type:varchar(255);not null;comment:目标公司"`
	Role            string                       `gorm:"type:varchar(255);not null;comment:目标岗位"`
	ExperienceLevel string                       `gorm:"type:varchar(64);not null;comment:经验等级"`
	FitScore        int                          `gorm:"not null;comment:简历匹配分数 0-100"`
	NumQuestions    int                          `gorm:"not null;comment:题目数量"`
	Recommendation  string                       `gorm:"type:varchar(64);not null;comment:录用建议"`
	Summary         string                       `gorm:"type:text;comment:面试总结"`
	Transcript      sqlx.JsonColumn[[]Utterance] `gorm:"type:json;comment:完整的面试对话"`
	Ctime           int64                        `gorm:"not null;index:idx_uid_ctime,priority:2;comment:创建时间"`
	Utime           int64                        `gorm:"not null;comment:更新时间"`
}

func (Interview) TableName() string { return "interviews" }

type Utterance struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type InterviewStats struct {
	Total             int64
	AvgScore          float64
	MaxScore          int
	DistinctCompanies int64
}
