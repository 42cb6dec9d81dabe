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

package biz

import (
	"context"

	"github.com/ecodeclub/aiinterview/internal/ai/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/ai/internal/service/llm/handler"
)

// CompositionHandler 通过组合 Handler 来完成某个业务
type CompositionHandler struct {
	root handler.Handler
	name string
}

func NewCombinedBizHandler(name string,
	common []handler.Builder,
	platform handler.Handler) *CompositionHandler {
	return &CompositionHandler{
		root: handler.Chain(common, platform),
		name: name,
	}
}

func (c *CompositionHandler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	return c.root.Handle(ctx, req)
}

func (c *CompositionHandler) Biz() string {
	return c.name
}
