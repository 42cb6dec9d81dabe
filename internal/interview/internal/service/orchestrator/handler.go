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

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate"
	"github.com/gotomicro/ego/core/elog"
)

const authorCandidate = "You"

func (s *session) handle(ctx context.Context, gen uint64, msg domain.Inbound) Reply {
	switch m := msg.(type) {
	case domain.Restart:
		return s.onRestart()
	case domain.Selection:
		return s.onSelection(m)
	case domain.Upload:
		return s.onUpload(ctx, gen, m)
	case domain.Text:
		return s.onText(ctx, gen, m)
	case domain.AudioStart:
		return s.onAudioStart(m)
	case domain.AudioChunk:
		return s.onAudioChunk(m)
	case domain.AudioEnd:
		return s.onAudioEnd(ctx, gen)
	default:
		return s.reject(fmt.Errorf("%w: 不支持的消息类型 %T", domain.ErrInput, msg))
	}
}

// reject 重新提示当前阶段，状态不变
func (s *session) reject(err error) Reply {
	return Reply{
		Messages: []domain.Outbound{s.o.prompt(s.stage, s.setup)},
		Err:      err,
	}
}

// fail 可以重试的失败，状态不变
func (s *session) fail(err error, text string) Reply {
	return Reply{
		Messages: []domain.Outbound{domain.SystemText(text)},
		Err:      err,
	}
}

func (s *session) transit(to domain.Stage) {
	stageTransitions.WithLabelValues(s.stage.String(), to.String()).Inc()
	s.logger.Debug("会话阶段切换",
		elog.String("session", s.key),
		elog.String("from", s.stage.String()),
		elog.String("to", to.String()))
	s.stage = to
}

func (s *session) onRestart() Reply {
	s.setup = domain.Setup{}
	s.profile = nil
	s.engine = nil
	s.assembler.Discard()
	s.transit(domain.StageSetupCompany)
	return Reply{Messages: s.o.greeting()}
}

func (s *session) onSelection(m domain.Selection) Reply {
	if !s.stage.IsSetup() {
		return s.reject(fmt.Errorf("%w: 阶段 %s 不接受选择", domain.ErrInput, s.stage))
	}
	if m.Stage != s.stage {
		return s.reject(fmt.Errorf("%w: 当前阶段是 %s, 收到的是 %s 的选择", domain.ErrInput, s.stage, m.Stage))
	}
	value := strings.TrimSpace(m.Value)
	if s.stage == domain.StageSetupQuestions && value == "" {
		value = strconv.Itoa(s.o.cfg.DefaultQuestions)
	}
	setup, err := s.setup.Apply(s.stage, value, s.o.cfg.Companies)
	if err != nil {
		return s.reject(err)
	}
	next := s.stage.NextSetup()
	if next == domain.StageAwaitingResume && !setup.Complete() {
		return s.reject(fmt.Errorf("%w: 面试配置不完整", domain.ErrInput))
	}
	s.setup = setup
	s.transit(next)
	msgs := []domain.Outbound{domain.SystemText("Selected: " + value)}
	if next == domain.StageAwaitingResume {
		msgs = append(msgs, domain.SystemText(fmt.Sprintf("Setup complete: %s at %s (%s), %d questions.",
			setup.Role, setup.Company, setup.ExperienceLevel, setup.QuestionCount)))
	}
	msgs = append(msgs, s.o.prompt(next, s.setup))
	return Reply{Messages: msgs}
}

func (s *session) onUpload(ctx context.Context, gen uint64, m domain.Upload) Reply {
	if s.stage != domain.StageAwaitingResume {
		return s.reject(fmt.Errorf("%w: 阶段 %s 不接受上传文件", domain.ErrInput, s.stage))
	}
	if len(m.Data) == 0 {
		return s.reject(fmt.Errorf("%w: 上传的文件为空", domain.ErrInput))
	}
	text, err := s.extract(ctx, m)
	if s.stale(gen) {
		return Reply{}
	}
	if err != nil {
		return s.fail(err, "We could not read any text from this file. "+
			"Please upload a readable PDF, DOCX or TXT resume.")
	}

	profile, decision, err := s.evaluate(ctx, text)
	if s.stale(gen) {
		return Reply{}
	}
	if err != nil {
		s.logger.Error("简历评估失败", elog.FieldErr(err), elog.Int64("uid", s.uid))
		return s.fail(err, "We could not evaluate your resume right now. Please upload it again.")
	}
	s.profile = &profile
	threshold := s.o.evaluator.Threshold()
	msgs := []domain.Outbound{domain.SystemText(profileSummary(profile, threshold))}
	if decision != domain.DecisionAdmit {
		s.transit(domain.StageRejected)
		msgs = append(msgs, domain.SystemText(fmt.Sprintf(
			"%s scored %d/100, which is below the threshold of %d. "+
				"We recommend gaining more experience in the required skills before trying again.",
			profile.Name, profile.FitScore, threshold), domain.RestartAction()))
		return Reply{Messages: msgs}
	}

	eng, err := engine.NewEngine(s.uid, profile, s.setup, s.o.dialogue, s.o.writer)
	if err != nil {
		s.logger.Error("创建面试引擎失败", elog.FieldErr(err), elog.Int64("uid", s.uid))
		return s.fail(err, "We could not start the interview. Please upload your resume again.")
	}
	s.engine = eng
	s.transit(domain.StageInterview)
	msgs = append(msgs, domain.SystemText(fmt.Sprintf(
		"Excellent match! %s scored %d/100. Starting the interview with %d questions. "+
			"You can type or speak your answers.",
		profile.Name, profile.FitScore, s.setup.QuestionCount)))
	return s.ask(ctx, gen, msgs)
}

func (s *session) extract(ctx context.Context, m domain.Upload) (string, error) {
	callCtx, cancel := s.o.callCtx(ctx)
	defer cancel()
	start := time.Now()
	text, err := s.o.extractor.Extract(callCtx, m.Filename, m.Data)
	observe("extract", start, err)
	if err != nil {
		return "", fmt.Errorf("%w: 提取简历文本失败: %w", domain.ErrInput, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: 简历 %s 中没有文本", domain.ErrInput, m.Filename)
	}
	return text, nil
}

func (s *session) evaluate(ctx context.Context, text string) (domain.CandidateProfile, domain.Decision, error) {
	callCtx, cancel := s.o.callCtx(ctx)
	defer cancel()
	start := time.Now()
	profile, decision, err := s.o.evaluator.Evaluate(callCtx, s.uid, gate.Request{
		ResumeText:      text,
		Role:            s.setup.Role,
		Company:         s.setup.Company,
		ExperienceLevel: s.setup.ExperienceLevel,
	})
	observe("evaluate", start, err)
	return profile, decision, err
}

// ask 生成下一个问题，并尽量附带语音
func (s *session) ask(ctx context.Context, gen uint64, msgs []domain.Outbound) Reply {
	callCtx, cancel := s.o.callCtx(ctx)
	start := time.Now()
	question, err := s.engine.NextQuestion(callCtx)
	cancel()
	observe("question", start, err)
	if err != nil {
		s.logger.Error("违反面试引擎调用约定", elog.FieldErr(err), elog.String("session", s.key))
		return Reply{Messages: append(msgs, s.o.prompt(s.stage, s.setup))}
	}
	if s.stale(gen) {
		return Reply{}
	}
	msgs = append(msgs, domain.Outbound{
		Kind:    domain.OutboundText,
		Author:  domain.AuthorInterviewer,
		Content: question,
	})
	voice := s.speak(ctx, question)
	if s.stale(gen) {
		return Reply{}
	}
	return Reply{Messages: append(msgs, voice...)}
}

// speak 语音合成失败不影响文本消息
func (s *session) speak(ctx context.Context, text string) []domain.Outbound {
	callCtx, cancel := s.o.callCtx(ctx)
	defer cancel()
	start := time.Now()
	data, mime, err := s.o.synthesizer.Synthesize(callCtx, text)
	observe("synthesize", start, err)
	if err != nil {
		s.logger.Warn("语音合成失败", elog.FieldErr(err), elog.String("session", s.key))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return []domain.Outbound{{
		Kind:   domain.OutboundAudio,
		Author: domain.AuthorInterviewer,
		Audio:  data,
		Mime:   mime,
	}}
}

func (s *session) onText(ctx context.Context, gen uint64, m domain.Text) Reply {
	if s.stage != domain.StageInterview {
		return s.reject(fmt.Errorf("%w: 阶段 %s 不接受文本消息", domain.ErrInput, s.stage))
	}
	content := strings.TrimSpace(m.Content)
	if content == "" {
		return s.reject(fmt.Errorf("%w: 回答不能为空", domain.ErrInput))
	}
	return s.answer(ctx, gen, content, nil)
}

// answer 记录回答，然后决定继续提问还是结束
func (s *session) answer(ctx context.Context, gen uint64, content string, msgs []domain.Outbound) Reply {
	if s.engine.ShouldConclude() {
		// 上一次生成报告失败了，这一次直接重试
		return s.conclude(ctx, gen, msgs)
	}
	if err := s.engine.RecordResponse(content); err != nil {
		s.logger.Error("违反面试引擎调用约定", elog.FieldErr(err), elog.String("session", s.key))
		return Reply{Messages: append(msgs, s.o.prompt(s.stage, s.setup))}
	}
	if s.engine.ShouldConclude() {
		return s.conclude(ctx, gen, msgs)
	}
	return s.ask(ctx, gen, msgs)
}

func (s *session) conclude(ctx context.Context, gen uint64, msgs []domain.Outbound) Reply {
	callCtx, cancel := s.o.callCtx(ctx)
	start := time.Now()
	report, err := s.engine.BuildReport(callCtx)
	cancel()
	observe("summary", start, err)
	if s.stale(gen) {
		return Reply{}
	}
	if err != nil {
		s.logger.Error("生成面试报告失败", elog.FieldErr(err), elog.String("session", s.key))
		return Reply{
			Messages: append(msgs, domain.SystemText(
				"We could not generate your interview summary. Send any message to try again.")),
			Err: err,
		}
	}

	var persistErr error
	if !s.engine.PersistAsText(ctx, report) {
		persistErr = fmt.Errorf("%w: 保存报告文件失败", domain.ErrPersistence)
	}
	if s.o.exporter != nil {
		if _, err = s.o.exporter.Write(ctx, report); err != nil {
			s.logger.Warn("导出面试报告失败", elog.FieldErr(err), elog.String("session", s.key))
		}
	}
	if err = s.appendHistory(ctx, report); err != nil && persistErr == nil {
		persistErr = err
	}

	s.engine = nil
	s.transit(domain.StageCompleted)
	msgs = append(msgs,
		domain.Outbound{
			Kind:    domain.OutboundText,
			Author:  domain.AuthorInterviewer,
			Content: "Thank you for your time! That concludes our interview.",
		},
		domain.SystemText("Interview Summary\n\n"+report.Summary))
	if persistErr != nil {
		msgs = append(msgs, domain.SystemText(
			"Note: your report could not be saved, but the summary above is still available."))
	}
	msgs = append(msgs, domain.SystemText("Recommendation: "+string(report.Recommendation), domain.RestartAction()))
	return Reply{Messages: msgs, Err: persistErr}
}

func (s *session) appendHistory(ctx context.Context, report domain.InterviewReport) error {
	callCtx, cancel := s.o.callCtx(ctx)
	defer cancel()
	start := time.Now()
	_, err := s.o.history.Append(callCtx, s.uid, report)
	observe("history", start, err)
	if err != nil {
		s.logger.Error("保存面试记录失败", elog.FieldErr(err), elog.Int64("uid", s.uid))
		return fmt.Errorf("%w: 保存面试记录失败: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (s *session) onAudioStart(m domain.AudioStart) Reply {
	if s.stage != domain.StageInterview {
		return s.reject(fmt.Errorf("%w: 阶段 %s 不接受语音", domain.ErrInput, s.stage))
	}
	s.assembler.Start(m.Mime)
	return Reply{}
}

func (s *session) onAudioChunk(m domain.AudioChunk) Reply {
	if s.stage != domain.StageInterview {
		return s.reject(fmt.Errorf("%w: 阶段 %s 不接受语音", domain.ErrInput, s.stage))
	}
	if err := s.assembler.Append(m.Data); err != nil {
		return s.reject(err)
	}
	return Reply{}
}

func (s *session) onAudioEnd(ctx context.Context, gen uint64) Reply {
	if s.stage != domain.StageInterview {
		s.assembler.Discard()
		return s.reject(fmt.Errorf("%w: 阶段 %s 不接受语音", domain.ErrInput, s.stage))
	}
	clip, err := s.assembler.Finish()
	if errors.Is(err, domain.ErrEmptyRecording) {
		return s.fail(fmt.Errorf("%w: %w", domain.ErrInput, err), "No audio data received. Please try again.")
	}
	if err != nil {
		return s.reject(err)
	}

	callCtx, cancel := s.o.callCtx(ctx)
	start := time.Now()
	text, err := s.o.transcriber.Transcribe(callCtx, clip.Filename("answer"), clip.Mime, clip.Data)
	cancel()
	observe("transcribe", start, err)
	if s.stale(gen) {
		return Reply{}
	}
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = errors.New("转写结果为空")
	}
	if err != nil {
		s.logger.Warn("语音转文字失败", elog.FieldErr(err), elog.String("session", s.key))
		return s.fail(fmt.Errorf("%w: 语音转文字失败: %w", domain.ErrBackendFailure, err),
			"Sorry, I couldn't understand the audio. Please try again or type your response.")
	}
	msgs := []domain.Outbound{{
		Kind:    domain.OutboundText,
		Author:  authorCandidate,
		Content: text,
	}}
	return s.answer(ctx, gen, text, msgs)
}

func observe(call string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	externalCalls.WithLabelValues(call, status).Observe(time.Since(start).Seconds())
}
