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

package test

import (
	"errors"

	"github.com/ecodeclub/ginx/gctx"
	"github.com/ecodeclub/ginx/session"
)

const CtxSessionKey = "_session"

func init() {
	session.SetDefaultProvider(&SessionProvider{})
}

// SessionProvider 测试用，直接读取中间件放进去的 session
type SessionProvider struct {
}

func (s *SessionProvider) NewSession(ctx *gctx.Context, uid int64, jwtData map[string]string, sessData map[string]any) (session.Session, error) {
	sess := session.NewMemorySession(session.Claims{Uid: uid, Data: jwtData})
	ctx.Set(CtxSessionKey, sess)
	return sess, nil
}

func (s *SessionProvider) Get(ctx *gctx.Context) (session.Session, error) {
	val, ok := ctx.Get(CtxSessionKey)
	if !ok {
		return nil, errors.New("未登录")
	}
	sess, ok := val.(session.Session)
	if !ok {
		return nil, errors.New("session 类型错误")
	}
	return sess, nil
}

func (s *SessionProvider) Destroy(ctx *gctx.Context) error {
	return errors.New("测试 SessionProvider 不支持 Destroy")
}

func (s *SessionProvider) UpdateClaims(ctx *gctx.Context, claims session.Claims) error {
	return errors.New("测试 SessionProvider 不支持 UpdateClaims")
}

func (s *SessionProvider) RenewAccessToken(ctx *gctx.Context) error {
	return errors.New("测试 SessionProvider 不支持 RenewAccessToken")
}
