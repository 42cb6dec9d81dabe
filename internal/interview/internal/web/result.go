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

package web

import (
	"errors"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	uploadTooLargeResult = ginx.Result{
		Code: errs.UploadTooLarge.Code,
		Msg:  errs.UploadTooLarge.Msg,
	}
	invalidInputResult = ginx.Result{
		Code: errs.InvalidInput.Code,
		Msg:  errs.InvalidInput.Msg,
	}
)

func codeOf(err error) errs.ErrorCode {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return errs.SessionNotFound
	case errors.Is(err, domain.ErrHistoryNotFound):
		return errs.HistoryNotFound
	case errors.Is(err, domain.ErrInput), errors.Is(err, domain.ErrEmptyRecording):
		return errs.InvalidInput
	case errors.Is(err, domain.ErrBackendFailure):
		return errs.BackendError
	default:
		return errs.SystemError
	}
}

func errorResult(err error) ginx.Result {
	code := codeOf(err)
	return ginx.Result{
		Code: code.Code,
		Msg:  code.Msg,
	}
}
