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

package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrDisabled = errors.New("语音服务没有开启")

// Service 语音转文字和文字转语音
type Service interface {
	Transcribe(ctx context.Context, filename, mime string, data []byte) (string, error)
	// Synthesize 返回音频和对应的 mime
	Synthesize(ctx context.Context, text string) ([]byte, string, error)
}

type Config struct {
	APIKey  string `yaml:"apikey"`
	BaseURL string `yaml:"baseURL"`
	// 转写模型，默认 whisper-1
	STTModel string `yaml:"sttModel"`
	// 合成模型，默认 tts-1
	TTSModel string `yaml:"ttsModel"`
	Voice    string `yaml:"voice"`
}

type OpenAIService struct {
	client   *openai.Client
	sttModel string
	ttsModel string
	voice    string
}

func NewOpenAIService(cfg Config) *OpenAIService {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	svc := &OpenAIService{
		client:   openai.NewClient(opts...),
		sttModel: cfg.STTModel,
		ttsModel: cfg.TTSModel,
		voice:    cfg.Voice,
	}
	if svc.sttModel == "" {
		svc.sttModel = string(openai.AudioModelWhisper1)
	}
	if svc.ttsModel == "" {
		svc.ttsModel = string(openai.SpeechModelTTS1)
	}
	if svc.voice == "" {
		svc.voice = string(openai.AudioSpeechNewParamsVoiceAlloy)
	}
	return svc
}

func (s *OpenAIService) Transcribe(ctx context.Context, filename, mime string, data []byte) (string, error) {
	res, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.FileParam(bytes.NewReader(data), filename, mime),
		Model: openai.F(openai.AudioModel(s.sttModel)),
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (s *OpenAIService) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          openai.F(text),
		Model:          openai.F(openai.SpeechModel(s.ttsModel)),
		Voice:          openai.F(openai.AudioSpeechNewParamsVoice(s.voice)),
		ResponseFormat: openai.F(openai.AudioSpeechNewParamsResponseFormatMP3),
	})
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("语音合成失败，状态码 %d", resp.StatusCode)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return audio, "audio/mpeg", nil
}

// NopService 没有配置语音服务的时候使用。
// 转写直接失败，合成返回空音频，文本消息不受影响
type NopService struct{}

func (NopService) Transcribe(_ context.Context, _, _ string, _ []byte) (string, error) {
	return "", ErrDisabled
}

func (NopService) Synthesize(_ context.Context, _ string) ([]byte, string, error) {
	return nil, "", nil
}
