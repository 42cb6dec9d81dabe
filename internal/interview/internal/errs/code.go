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

package errs

var (
	SystemError     = ErrorCode{Code: 517001, Msg: "系统错误"}
	BackendError    = ErrorCode{Code: 517002, Msg: "AI 服务暂时不可用，请稍后重试"}
	SessionNotFound = ErrorCode{Code: 417001, Msg: "会话不存在，请重新连接"}
	InvalidInput    = ErrorCode{Code: 417002, Msg: "输入不合法"}
	HistoryNotFound = ErrorCode{Code: 417003, Msg: "面试记录不存在"}
	UploadTooLarge  = ErrorCode{Code: 417004, Msg: "文件过大"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
