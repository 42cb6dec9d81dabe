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

package audio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
)

const (
	DefaultMime      = "audio/webm"
	DefaultExtension = ".webm"
)

// 按照顺序匹配，audio/mpeg 和 audio/mp3 都是 mp3
var extensions = []struct {
	keyword string
	ext     string
}{
	{keyword: "webm", ext: ".webm"},
	{keyword: "ogg", ext: ".ogg"},
	{keyword: "wav", ext: ".wav"},
	{keyword: "mp3", ext: ".mp3"},
	{keyword: "mpeg", ext: ".mp3"},
	{keyword: "mp4", ext: ".mp4"},
	{keyword: "m4a", ext: ".m4a"},
}

// ExtensionOf 根据 mime 类型决定文件后缀，识别不了就用 .webm
func ExtensionOf(mime string) string {
	mime = strings.ToLower(mime)
	for _, e := range extensions {
		if strings.Contains(mime, e.keyword) {
			return e.ext
		}
	}
	return DefaultExtension
}

// Clip 一段完整的录音
type Clip struct {
	Data []byte
	Mime string
	Ext  string
}

func (c Clip) Filename(name string) string {
	return name + c.Ext
}

// Assembler 把一次录音的分片按照到达顺序拼起来。
// 它归属于某一个会话，只会在会话自己的 goroutine 里面被调用，所以没有加锁
type Assembler struct {
	minBytes  int
	mime      string
	buf       bytes.Buffer
	recording bool
}

func NewAssembler(minBytes int) *Assembler {
	return &Assembler{minBytes: minBytes}
}

// Start 开始一段新的录音，之前没有结束的录音直接丢弃
func (a *Assembler) Start(mime string) {
	if mime == "" {
		mime = DefaultMime
	}
	a.buf.Reset()
	a.mime = mime
	a.recording = true
}

func (a *Assembler) Append(chunk []byte) error {
	if !a.recording {
		return fmt.Errorf("%w: 录音尚未开始或者已经结束", domain.ErrInput)
	}
	a.buf.Write(chunk)
	return nil
}

// Finish 结束录音并返回拼接好的数据，太短的录音返回 ErrEmptyRecording
func (a *Assembler) Finish() (Clip, error) {
	if !a.recording {
		return Clip{}, fmt.Errorf("%w: 录音尚未开始或者已经结束", domain.ErrInput)
	}
	a.recording = false
	size := a.buf.Len()
	if size < a.minBytes {
		a.buf.Reset()
		return Clip{}, fmt.Errorf("%w: 只收到了 %d 字节", domain.ErrEmptyRecording, size)
	}
	data := bytes.Clone(a.buf.Bytes())
	a.buf.Reset()
	return Clip{
		Data: data,
		Mime: a.mime,
		Ext:  ExtensionOf(a.mime),
	}, nil
}

// Discard 丢弃正在进行的录音
func (a *Assembler) Discard() {
	a.buf.Reset()
	a.recording = false
}

func (a *Assembler) Recording() bool {
	return a.recording
}
