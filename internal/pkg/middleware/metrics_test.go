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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsBuilder_Build(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	reg := prometheus.NewRegistry()
	builder := NewMetricsBuilder("test", reg)
	server := gin.New()
	server.Use(builder.Build())
	server.POST("/interview/sessions/:key/text", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	testCases := []struct {
		name string
		path string
	}{
		{name: "匹配路由", path: "/interview/sessions/1/text"},
		{name: "匹配路由的另一个会话", path: "/interview/sessions/2/text"},
		{name: "没有匹配的路由", path: "/not/found"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, nil)
			server.ServeHTTP(httptest.NewRecorder(), req)
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		builder.requests.WithLabelValues(http.MethodPost, "/interview/sessions/:key/text", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		builder.requests.WithLabelValues(http.MethodPost, unmatchedPath, "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(builder.inflight))
}
