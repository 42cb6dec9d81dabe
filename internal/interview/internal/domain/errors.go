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

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInput 当前阶段不接受的输入，提示用户重新输入，状态不变
	ErrInput = errors.New("输入不合法")
	// ErrBackendFailure 外部能力不可用或者返回了无法解析的数据，可以重试
	ErrBackendFailure = errors.New("外部服务调用失败")
	// ErrContract 面试引擎的调用顺序被破坏，属于代码缺陷
	ErrContract = errors.New("违反面试引擎调用约定")
	// ErrPrematureReport 还没结束就要求生成报告
	ErrPrematureReport = fmt.Errorf("%w: 面试尚未结束，不能生成报告", ErrContract)
	// ErrPersistence 报告或者历史记录写入失败，不影响会话
	ErrPersistence = errors.New("持久化失败")
	// ErrEmptyRecording 录音太短，多半是静音
	ErrEmptyRecording = errors.New("录音为空")
	// ErrSessionNotFound 会话不存在或者已经断开
	ErrSessionNotFound = errors.New("会话不存在")
	// ErrHistoryNotFound 历史记录不存在，或者不属于当前用户
	ErrHistoryNotFound = errors.New("面试记录不存在")
)
