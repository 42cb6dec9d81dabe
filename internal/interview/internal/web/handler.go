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
	"io"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/orchestrator"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const defaultMaxUploadBytes = 10 << 20

type Handler struct {
	orch       *orchestrator.Orchestrator
	historySvc service.HistoryService
	// 简历文件的大小上限
	maxUpload int64
	logger    *elog.Component
}

func NewHandler(orch *orchestrator.Orchestrator, historySvc service.HistoryService, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Handler{
		orch:       orch,
		historySvc: historySvc,
		maxUpload:  maxUpload,
		logger:     elog.DefaultLogger,
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/interview")
	g.POST("/connect", ginx.S(h.Connect))
	g.POST("/disconnect", ginx.BS[SessionKey](h.Disconnect))
	g.POST("/state", ginx.BS[SessionKey](h.State))
	g.POST("/selection", ginx.BS[SelectionReq](h.Selection))
	g.POST("/text", ginx.BS[TextReq](h.Text))
	g.POST("/upload", ginx.S(h.Upload))
	g.POST("/audio/start", ginx.BS[AudioStartReq](h.AudioStart))
	g.POST("/audio/chunk", ginx.BS[AudioChunkReq](h.AudioChunk))
	g.POST("/audio/end", ginx.BS[SessionKey](h.AudioEnd))
	g.POST("/restart", ginx.BS[SessionKey](h.Restart))

	hg := g.Group("/history")
	hg.POST("/list", ginx.BS[ListReq](h.HistoryList))
	hg.POST("/stats", ginx.S(h.HistoryStats))
	hg.POST("/detail", ginx.BS[DetailReq](h.HistoryDetail))
}

// Connect 创建会话，返回会话的 key 和欢迎语
func (h *Handler) Connect(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	key, reply, err := h.orch.Connect(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newReply(key, reply)}, nil
}

func (h *Handler) Disconnect(ctx *ginx.Context, req SessionKey, sess session.Session) (ginx.Result, error) {
	err := h.orch.Disconnect(ctx.Request.Context(), req.Key, sess.Claims().Uid)
	if err != nil {
		return errorResult(err), err
	}
	return ginx.Result{}, nil
}

func (h *Handler) State(ctx *ginx.Context, req SessionKey, sess session.Session) (ginx.Result, error) {
	view, err := h.orch.Snapshot(ctx.Request.Context(), req.Key, sess.Claims().Uid)
	if err != nil {
		return errorResult(err), err
	}
	return ginx.Result{Data: newState(view)}, nil
}

func (h *Handler) Selection(ctx *ginx.Context, req SelectionReq, sess session.Session) (ginx.Result, error) {
	return h.dispatch(ctx, req.Key, sess, domain.Selection{
		Stage: domain.Stage(req.Stage),
		Value: req.Value,
	})
}

func (h *Handler) Text(ctx *ginx.Context, req TextReq, sess session.Session) (ginx.Result, error) {
	return h.dispatch(ctx, req.Key, sess, domain.Text{Content: req.Content})
}

// Upload multipart 表单，key 是会话，file 是简历
func (h *Handler) Upload(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	key := ctx.PostForm("key")
	fh, err := ctx.FormFile("file")
	if err != nil {
		return invalidInputResult, err
	}
	if fh.Size > h.maxUpload {
		return uploadTooLargeResult, nil
	}
	file, err := fh.Open()
	if err != nil {
		return systemErrorResult, err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		return systemErrorResult, err
	}
	if int64(len(data)) > h.maxUpload {
		return uploadTooLargeResult, nil
	}
	return h.dispatch(ctx, key, sess, domain.Upload{
		Filename: fh.Filename,
		Data:     data,
	})
}

func (h *Handler) AudioStart(ctx *ginx.Context, req AudioStartReq, sess session.Session) (ginx.Result, error) {
	return h.dispatch(ctx, req.Key, sess, domain.AudioStart{Mime: req.Mime})
}

func (h *Handler) AudioChunk(ctx *ginx.Context, req AudioChunkReq, sess session.Session) (ginx.Result, error) {
	return h.dispatch(ctx, req.Key, sess, domain.AudioChunk{Data: req.Data})
}

func (h *Handler) AudioEnd(ctx *ginx.Context, req SessionKey, sess session.Session) (ginx.Result, error) {
	return h.dispatch(ctx, req.Key, sess, domain.AudioEnd{})
}

// Restart 丢弃当前进度，回到选择公司
func (h *Handler) Restart(ctx *ginx.Context, req SessionKey, sess session.Session) (ginx.Result, error) {
	return h.dispatch(ctx, req.Key, sess, domain.Restart{})
}

// dispatch 会话内部已经处理的错误只影响返回码，消息照常返回
func (h *Handler) dispatch(ctx *ginx.Context, key string, sess session.Session, msg domain.Inbound) (ginx.Result, error) {
	reply, err := h.orch.Dispatch(ctx.Request.Context(), key, sess.Claims().Uid, msg)
	if err != nil {
		return errorResult(err), err
	}
	res := ginx.Result{Data: newReply(key, reply)}
	if reply.Err != nil && !errors.Is(reply.Err, domain.ErrPersistence) {
		code := codeOf(reply.Err)
		res.Code = code.Code
		res.Msg = code.Msg
	}
	return res, nil
}

func (h *Handler) HistoryList(ctx *ginx.Context, req ListReq, sess session.Session) (ginx.Result, error) {
	entries, total, err := h.historySvc.ListRecent(ctx.Request.Context(), sess.Claims().Uid, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: HistoryList{
			Total: total,
			List: slice.Map(entries, func(_ int, src domain.HistoryEntry) History {
				return newHistory(src, false)
			}),
		},
	}, nil
}

func (h *Handler) HistoryStats(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	stats, err := h.historySvc.Stats(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Stats{
			Total:             stats.Total,
			AvgScore:          stats.AvgScore,
			MaxScore:          stats.MaxScore,
			DistinctCompanies: stats.DistinctCompanies,
		},
	}, nil
}

func (h *Handler) HistoryDetail(ctx *ginx.Context, req DetailReq, sess session.Session) (ginx.Result, error) {
	entry, err := h.historySvc.Detail(ctx.Request.Context(), sess.Claims().Uid, req.ID)
	if err != nil {
		return errorResult(err), err
	}
	return ginx.Result{Data: newHistory(entry, true)}, nil
}
