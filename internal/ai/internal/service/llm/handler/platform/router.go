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

package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/aiinterview/internal/ai/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler"
)

var ErrUnknownPlatform = errors.New("未知的平台")

// Router 按照业务配置里面的平台把请求交给真正的出口
type Router struct {
	platforms map[string]handler.Handler
	fallback  string
}

var _ handler.Handler = &Router{}

func NewRouter(platforms map[string]handler.Handler, fallback string) *Router {
	return &Router{
		platforms: platforms,
		fallback:  fallback,
	}
}

func (r *Router) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	name := req.Config.Platform
	if name == "" {
		name = r.fallback
	}
	h, ok := r.platforms[name]
	if !ok {
		return domain.LLMResponse{}, fmt.Errorf("%w platform: %s", ErrUnknownPlatform, name)
	}
	return h.Handle(ctx, req)
}
