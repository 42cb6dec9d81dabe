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

package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var ErrRemoteFailure = errors.New("远程解析 pdf 失败")

var pdfMagic = []byte("%PDF-")

// RemotePDFParser 把 pdf 上传到解析服务。
// 服务接收 multipart 的 file 字段，返回 {"text": "..."}
type RemotePDFParser struct {
	client *resty.Client
	path   string
}

func NewRemotePDFParser(client *resty.Client, path string) *RemotePDFParser {
	return &RemotePDFParser{
		client: client,
		path:   path,
	}
}

type pdfResult struct {
	Text string `json:"text"`
}

func (p *RemotePDFParser) Parse(ctx context.Context, data []byte) (string, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", fmt.Errorf("%w: 不是 pdf 文件", ErrInvalidDocument)
	}
	var res pdfResult
	resp, err := p.client.R().
		SetContext(ctx).
		SetFileReader("file", "resume.pdf", bytes.NewReader(data)).
		SetResult(&res).
		Post(p.path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteFailure, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: 状态码 %d", ErrRemoteFailure, resp.StatusCode())
	}
	return res.Text, nil
}
