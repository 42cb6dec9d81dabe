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
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnsupportedFormat = errors.New("不支持的文档格式")
	ErrInvalidDocument   = errors.New("文档已损坏")
)

// Parser 从某一种格式的文档里面提取纯文本
type Parser interface {
	Parse(ctx context.Context, data []byte) (string, error)
}

type ParserFunc func(ctx context.Context, data []byte) (string, error)

func (f ParserFunc) Parse(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Extractor 按照文件后缀选择 Parser
type Extractor struct {
	parsers map[string]Parser
}

// NewExtractor pdf 为 nil 的时候不支持 pdf
func NewExtractor(pdf Parser) *Extractor {
	e := &Extractor{
		parsers: map[string]Parser{
			".txt":  ParserFunc(parsePlain),
			".md":   ParserFunc(parsePlain),
			".docx": ParserFunc(parseDocx),
		},
	}
	if pdf != nil {
		e.parsers[".pdf"] = pdf
	}
	return e
}

// Extract 返回的文本已经去掉首尾空白，可能为空
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	p, ok := e.parsers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	text, err := p.Parse(ctx, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func parsePlain(_ context.Context, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: 不是 UTF-8 文本", ErrInvalidDocument)
	}
	return string(data), nil
}
