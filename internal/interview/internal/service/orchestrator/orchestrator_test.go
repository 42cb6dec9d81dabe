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

package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	enginemocks "github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine/mocks"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/gate"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/orchestrator"
	orchestratormocks "github.com/ecodeclub/aiinterview/internal/interview/internal/service/orchestrator/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const uid = int64(123)

var companies = []string{"Google", "Amazon"}

type deps struct {
	evaluator   *orchestratormocks.MockEvaluator
	dialogue    *enginemocks.MockDialogue
	extractor   *orchestratormocks.MockExtractor
	transcriber *orchestratormocks.MockTranscriber
	synthesizer *orchestratormocks.MockSynthesizer
	history     *orchestratormocks.MockHistoryStore
	dir         string
}

func newOrchestrator(t *testing.T, ctrl *gomock.Controller) (*orchestrator.Orchestrator, *deps) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	d := &deps{
		evaluator:   orchestratormocks.NewMockEvaluator(ctrl),
		dialogue:    enginemocks.NewMockDialogue(ctrl),
		extractor:   orchestratormocks.NewMockExtractor(ctrl),
		transcriber: orchestratormocks.NewMockTranscriber(ctrl),
		synthesizer: orchestratormocks.NewMockSynthesizer(ctrl),
		history:     orchestratormocks.NewMockHistoryStore(ctrl),
		dir:         t.TempDir(),
	}
	d.evaluator.EXPECT().Threshold().Return(50).AnyTimes()
	o := orchestrator.NewOrchestrator(orchestrator.Config{
		Companies:        companies,
		DefaultQuestions: 5,
		MinAudioBytes:    4,
		CallTimeout:      time.Second,
	}, node, d.evaluator, d.dialogue, engine.NewTextReportWriter(d.dir),
		d.extractor, d.transcriber, d.synthesizer, d.history)
	t.Cleanup(o.Close)
	return o, d
}

func connect(t *testing.T, o *orchestrator.Orchestrator) string {
	key, reply, err := o.Connect(context.Background(), uid)
	require.NoError(t, err)
	require.Equal(t, domain.StageSetupCompany, reply.Stage)
	require.NotEmpty(t, reply.Messages)
	return key
}

func dispatch(t *testing.T, o *orchestrator.Orchestrator, key string, msg domain.Inbound) orchestrator.Reply {
	reply, err := o.Dispatch(context.Background(), key, uid, msg)
	require.NoError(t, err)
	return reply
}

func snapshot(t *testing.T, o *orchestrator.Orchestrator, key string) orchestrator.View {
	v, err := o.Snapshot(context.Background(), key, uid)
	require.NoError(t, err)
	return v
}

func completeSetup(t *testing.T, o *orchestrator.Orchestrator, key string, n int) {
	for _, sel := range []domain.Selection{
		{Stage: domain.StageSetupCompany, Value: "Google"},
		{Stage: domain.StageSetupExperience, Value: "Junior"},
		{Stage: domain.StageSetupRoleCategory, Value: "Engineering"},
		{Stage: domain.StageSetupRole, Value: "Backend Developer"},
		{Stage: domain.StageSetupQuestions, Value: strconv.Itoa(n)},
	} {
		reply := dispatch(t, o, key, sel)
		require.NoError(t, reply.Err)
	}
	require.Equal(t, domain.StageAwaitingResume, snapshot(t, o, key).Stage)
}

func profile(score int) domain.CandidateProfile {
	return domain.CandidateProfile{
		Name:              "Alice",
		Skills:            []string{"Go"},
		YearsOfExperience: 2,
		FitScore:          score,
	}
}

func TestOrchestrator_Setup(t *testing.T) {
	testCases := []struct {
		name      string
		inputs    []domain.Inbound
		wantStage domain.Stage
		wantSetup domain.Setup
		// 最后一条消息的错误
		wantErr error
	}{
		{
			name: "按顺序完成配置",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Google"},
				domain.Selection{Stage: domain.StageSetupExperience, Value: "Junior"},
				domain.Selection{Stage: domain.StageSetupRoleCategory, Value: "Engineering"},
				domain.Selection{Stage: domain.StageSetupRole, Value: "Backend Developer"},
				domain.Selection{Stage: domain.StageSetupQuestions, Value: "5"},
			},
			wantStage: domain.StageAwaitingResume,
			wantSetup: domain.Setup{
				Company:         "Google",
				ExperienceLevel: "Junior",
				RoleCategory:    "Engineering",
				Role:            "Backend Developer",
				QuestionCount:   5,
			},
		},
		{
			name: "题目数量使用默认值",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Amazon"},
				domain.Selection{Stage: domain.StageSetupExperience, Value: "Senior"},
				domain.Selection{Stage: domain.StageSetupRoleCategory, Value: "Data"},
				domain.Selection{Stage: domain.StageSetupRole, Value: "Data Engineer"},
				domain.Selection{Stage: domain.StageSetupQuestions, Value: ""},
			},
			wantStage: domain.StageAwaitingResume,
			wantSetup: domain.Setup{
				Company:         "Amazon",
				ExperienceLevel: "Senior",
				RoleCategory:    "Data",
				Role:            "Data Engineer",
				QuestionCount:   5,
			},
		},
		{
			name: "乱序选择被拒绝",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupRole, Value: "Backend Developer"},
			},
			wantStage: domain.StageSetupCompany,
			wantErr:   domain.ErrInput,
		},
		{
			name: "同一阶段重复选择",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Google"},
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Amazon"},
			},
			wantStage: domain.StageSetupExperience,
			wantSetup: domain.Setup{Company: "Google"},
			wantErr:   domain.ErrInput,
		},
		{
			name: "不存在的公司",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Initech"},
			},
			wantStage: domain.StageSetupCompany,
			wantErr:   domain.ErrInput,
		},
		{
			name: "岗位不属于所选大类",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Google"},
				domain.Selection{Stage: domain.StageSetupExperience, Value: "Junior"},
				domain.Selection{Stage: domain.StageSetupRoleCategory, Value: "Data"},
				domain.Selection{Stage: domain.StageSetupRole, Value: "Backend Developer"},
			},
			wantStage: domain.StageSetupRole,
			wantSetup: domain.Setup{Company: "Google", ExperienceLevel: "Junior", RoleCategory: "Data"},
			wantErr:   domain.ErrInput,
		},
		{
			name: "题目数量越界",
			inputs: []domain.Inbound{
				domain.Selection{Stage: domain.StageSetupCompany, Value: "Google"},
				domain.Selection{Stage: domain.StageSetupExperience, Value: "Junior"},
				domain.Selection{Stage: domain.StageSetupRoleCategory, Value: "Engineering"},
				domain.Selection{Stage: domain.StageSetupRole, Value: "Backend Developer"},
				domain.Selection{Stage: domain.StageSetupQuestions, Value: "21"},
			},
			wantStage: domain.StageSetupQuestions,
			wantSetup: domain.Setup{
				Company:         "Google",
				ExperienceLevel: "Junior",
				RoleCategory:    "Engineering",
				Role:            "Backend Developer",
			},
			wantErr: domain.ErrInput,
		},
		{
			name: "配置阶段发送文本",
			inputs: []domain.Inbound{
				domain.Text{Content: "Google"},
			},
			wantStage: domain.StageSetupCompany,
			wantErr:   domain.ErrInput,
		},
		{
			name: "配置阶段上传文件",
			inputs: []domain.Inbound{
				domain.Upload{Filename: "cv.pdf", Data: []byte("pdf")},
			},
			wantStage: domain.StageSetupCompany,
			wantErr:   domain.ErrInput,
		},
		{
			name: "配置阶段发送语音",
			inputs: []domain.Inbound{
				domain.AudioStart{Mime: "audio/webm"},
			},
			wantStage: domain.StageSetupCompany,
			wantErr:   domain.ErrInput,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			o, _ := newOrchestrator(t, ctrl)
			key := connect(t, o)
			var reply orchestrator.Reply
			for _, in := range tc.inputs {
				reply = dispatch(t, o, key, in)
			}
			assert.ErrorIs(t, reply.Err, tc.wantErr)
			assert.Equal(t, tc.wantStage, reply.Stage)
			if tc.wantErr != nil {
				// 重新提示当前阶段
				require.NotEmpty(t, reply.Messages)
			}
			v := snapshot(t, o, key)
			assert.Equal(t, tc.wantStage, v.Stage)
			assert.Equal(t, tc.wantSetup, v.Setup)
		})
	}
}

// 随机输入下，进入等待简历阶段当且仅当所有配置都已经填好
func TestOrchestrator_SetupRandomSequence(t *testing.T) {
	pool := []domain.Inbound{
		domain.Selection{Stage: domain.StageSetupCompany, Value: "Google"},
		domain.Selection{Stage: domain.StageSetupCompany, Value: "Nope"},
		domain.Selection{Stage: domain.StageSetupExperience, Value: "Mid-Level"},
		domain.Selection{Stage: domain.StageSetupExperience, Value: "Guru"},
		domain.Selection{Stage: domain.StageSetupRoleCategory, Value: "Infrastructure"},
		domain.Selection{Stage: domain.StageSetupRole, Value: "DevOps Engineer"},
		domain.Selection{Stage: domain.StageSetupRole, Value: "Data Scientist"},
		domain.Selection{Stage: domain.StageSetupQuestions, Value: "3"},
		domain.Selection{Stage: domain.StageSetupQuestions, Value: "-1"},
		domain.Text{Content: "hello"},
	}
	ctrl := gomock.NewController(t)
	o, _ := newOrchestrator(t, ctrl)
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 30; round++ {
		key := connect(t, o)
		for i := 0; i < 40; i++ {
			in := pool[r.Intn(len(pool))]
			reply := dispatch(t, o, key, in)
			v := snapshot(t, o, key)
			assert.Equal(t, v.Stage, reply.Stage)
			if v.Stage == domain.StageAwaitingResume {
				assert.True(t, v.Setup.Complete())
				break
			}
			assert.False(t, v.Setup.Complete())
			assert.True(t, v.Stage.IsSetup())
		}
		require.NoError(t, o.Disconnect(context.Background(), key, uid))
	}
}

func TestOrchestrator_RejectScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	key := connect(t, o)
	completeSetup(t, o, key, 5)

	d.extractor.EXPECT().Extract(gomock.Any(), "cv.pdf", []byte("pdf")).Return("resume text", nil)
	d.evaluator.EXPECT().Evaluate(gomock.Any(), uid, gomock.Any()).
		Return(profile(40), domain.DecisionReject, nil)
	reply := dispatch(t, o, key, domain.Upload{Filename: "cv.pdf", Data: []byte("pdf")})
	require.NoError(t, reply.Err)
	assert.Equal(t, domain.StageRejected, reply.Stage)

	v := snapshot(t, o, key)
	require.NotNil(t, v.Profile)
	assert.Equal(t, 40, v.Profile.FitScore)
	assert.Equal(t, 0, v.QuestionsAsked)
	assert.Equal(t, 0, v.MaxQuestions)

	// 结束状态下只接受重新开始
	reply = dispatch(t, o, key, domain.Text{Content: "please"})
	assert.ErrorIs(t, reply.Err, domain.ErrInput)
	assert.Equal(t, domain.StageRejected, reply.Stage)
	reply = dispatch(t, o, key, domain.Upload{Filename: "cv.pdf", Data: []byte("pdf")})
	assert.ErrorIs(t, reply.Err, domain.ErrInput)
	assert.Equal(t, domain.StageRejected, reply.Stage)

	reply = dispatch(t, o, key, domain.Restart{})
	require.NoError(t, reply.Err)
	assert.Equal(t, domain.StageSetupCompany, reply.Stage)
	v = snapshot(t, o, key)
	assert.Equal(t, domain.Setup{}, v.Setup)
	assert.Nil(t, v.Profile)
}

func TestOrchestrator_CompleteScenario(t *testing.T) {
	const n = 5
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	key := connect(t, o)
	completeSetup(t, o, key, n)

	d.extractor.EXPECT().Extract(gomock.Any(), "cv.pdf", gomock.Any()).Return("resume text", nil)
	d.evaluator.EXPECT().Evaluate(gomock.Any(), uid, gomock.Any()).
		Return(profile(82), domain.DecisionAdmit, nil)
	d.dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, qc engine.QuestionContext) (string, error) {
			assert.Equal(t, n, qc.MaxQuestions)
			assert.Equal(t, "Google", qc.Setup.Company)
			return fmt.Sprintf("question %d", qc.QuestionNumber), nil
		}).Times(n)
	d.synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any()).
		Return([]byte("mp3"), "audio/mpeg", nil).Times(n)
	d.dialogue.EXPECT().Summarize(gomock.Any(), gomock.Any()).
		Return("Overall 8/10. Final Recommendation: Strongly Recommend", nil)
	var saved domain.InterviewReport
	d.history.EXPECT().Append(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(ctx context.Context, uid int64, report domain.InterviewReport) (int64, error) {
			saved = report
			return 1, nil
		}).Times(1)

	reply := dispatch(t, o, key, domain.Upload{Filename: "cv.pdf", Data: []byte("pdf")})
	require.NoError(t, reply.Err)
	assert.Equal(t, domain.StageInterview, reply.Stage)
	assertQuestion(t, reply, "question 1")

	for i := 1; i <= n; i++ {
		v := snapshot(t, o, key)
		assert.Equal(t, i, v.QuestionsAsked)
		assert.Equal(t, i-1, v.ResponsesReceived)
		reply = dispatch(t, o, key, domain.Text{Content: fmt.Sprintf("answer %d", i)})
		require.NoError(t, reply.Err)
		if i < n {
			assert.Equal(t, domain.StageInterview, reply.Stage)
			assertQuestion(t, reply, fmt.Sprintf("question %d", i+1))
		}
	}
	assert.Equal(t, domain.StageCompleted, reply.Stage)
	last := reply.Messages[len(reply.Messages)-1]
	assert.Equal(t, []domain.Action{domain.RestartAction()}, last.Actions)

	require.Len(t, saved.Conversation, 2*n)
	for i := 0; i < n; i++ {
		assert.Equal(t, domain.Utterance{Role: domain.RoleInterviewer, Content: fmt.Sprintf("question %d", i+1)},
			saved.Conversation[2*i])
		assert.Equal(t, domain.Utterance{Role: domain.RoleCandidate, Content: fmt.Sprintf("answer %d", i+1)},
			saved.Conversation[2*i+1])
	}
	assert.Equal(t, domain.RecommendationStrong, saved.Recommendation)
	assert.Equal(t, 82, saved.Profile.FitScore)

	entries, err := os.ReadDir(d.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	v := snapshot(t, o, key)
	assert.Equal(t, domain.StageCompleted, v.Stage)
	assert.Equal(t, 0, v.MaxQuestions)
}

func assertQuestion(t *testing.T, reply orchestrator.Reply, question string) {
	t.Helper()
	var text, voice bool
	for _, m := range reply.Messages {
		if m.Author != domain.AuthorInterviewer {
			continue
		}
		switch m.Kind {
		case domain.OutboundText:
			text = m.Content == question
		case domain.OutboundAudio:
			voice = string(m.Audio) == "mp3" && m.Mime == "audio/mpeg"
		}
	}
	assert.True(t, text, question)
	assert.True(t, voice, question)
}

func TestOrchestrator_UploadFailure(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(d *deps)
		wantErr error
	}{
		{
			name: "无法提取文本",
			mock: func(d *deps) {
				d.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bad pdf"))
			},
			wantErr: domain.ErrInput,
		},
		{
			name: "提取出的文本为空",
			mock: func(d *deps) {
				d.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("  ", nil)
			},
			wantErr: domain.ErrInput,
		},
		{
			name: "评分服务失败",
			mock: func(d *deps) {
				d.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("resume", nil)
				d.evaluator.EXPECT().Evaluate(gomock.Any(), uid, gomock.Any()).
					Return(domain.CandidateProfile{}, domain.DecisionReject,
						fmt.Errorf("%w: mock", domain.ErrBackendFailure))
			},
			wantErr: domain.ErrBackendFailure,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			o, d := newOrchestrator(t, ctrl)
			key := connect(t, o)
			completeSetup(t, o, key, 3)
			tc.mock(d)
			reply := dispatch(t, o, key, domain.Upload{Filename: "cv.pdf", Data: []byte("pdf")})
			assert.ErrorIs(t, reply.Err, tc.wantErr)
			assert.Equal(t, domain.StageAwaitingResume, reply.Stage)
			v := snapshot(t, o, key)
			assert.Nil(t, v.Profile)
			assert.Equal(t, domain.StageAwaitingResume, v.Stage)
		})
	}
}

// startInterview 进入面试阶段并且已经问了第一个问题
func startInterview(t *testing.T, o *orchestrator.Orchestrator, d *deps, n int) string {
	key := connect(t, o)
	completeSetup(t, o, key, n)
	d.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("resume", nil)
	d.evaluator.EXPECT().Evaluate(gomock.Any(), uid, gomock.Any()).
		Return(profile(90), domain.DecisionAdmit, nil)
	reply := dispatch(t, o, key, domain.Upload{Filename: "cv.txt", Data: []byte("resume")})
	require.Equal(t, domain.StageInterview, reply.Stage)
	return key
}

func TestOrchestrator_Audio(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	d.dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return("question", nil).Times(2)
	d.synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, "", nil).AnyTimes()
	key := startInterview(t, o, d, 3)

	// 太短的录音
	dispatch(t, o, key, domain.AudioStart{Mime: "audio/ogg"})
	dispatch(t, o, key, domain.AudioChunk{Data: []byte("a")})
	reply := dispatch(t, o, key, domain.AudioEnd{})
	assert.ErrorIs(t, reply.Err, domain.ErrInput)
	assert.ErrorIs(t, reply.Err, domain.ErrEmptyRecording)

	// 结束之后再发送分片
	reply = dispatch(t, o, key, domain.AudioChunk{Data: []byte("late")})
	assert.ErrorIs(t, reply.Err, domain.ErrInput)

	// 转写失败
	dispatch(t, o, key, domain.AudioStart{Mime: "audio/ogg"})
	dispatch(t, o, key, domain.AudioChunk{Data: []byte("noise")})
	d.transcriber.EXPECT().Transcribe(gomock.Any(), "answer.ogg", "audio/ogg", []byte("noise")).
		Return("", errors.New("mock err"))
	reply = dispatch(t, o, key, domain.AudioEnd{})
	assert.ErrorIs(t, reply.Err, domain.ErrBackendFailure)
	v := snapshot(t, o, key)
	assert.Equal(t, 1, v.QuestionsAsked)
	assert.Equal(t, 0, v.ResponsesReceived)

	// 正常录音
	dispatch(t, o, key, domain.AudioStart{Mime: "audio/webm"})
	for _, c := range []string{"b1", "b2", "b3"} {
		reply = dispatch(t, o, key, domain.AudioChunk{Data: []byte(c)})
		require.NoError(t, reply.Err)
	}
	assert.True(t, snapshot(t, o, key).Recording)
	d.transcriber.EXPECT().Transcribe(gomock.Any(), "answer.webm", "audio/webm", []byte("b1b2b3")).
		Return("my spoken answer", nil)
	reply = dispatch(t, o, key, domain.AudioEnd{})
	require.NoError(t, reply.Err)
	require.NotEmpty(t, reply.Messages)
	assert.Equal(t, "my spoken answer", reply.Messages[0].Content)
	v = snapshot(t, o, key)
	assert.Equal(t, 2, v.QuestionsAsked)
	assert.Equal(t, 1, v.ResponsesReceived)
	assert.False(t, v.Recording)
}

func TestOrchestrator_SynthesizerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	d.dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return("question", nil).Times(2)
	d.synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, "", errors.New("tts down")).Times(2)
	key := startInterview(t, o, d, 3)
	reply := dispatch(t, o, key, domain.Text{Content: "answer"})
	require.NoError(t, reply.Err)
	require.Len(t, reply.Messages, 1)
	assert.Equal(t, domain.OutboundText, reply.Messages[0].Kind)
	assert.Equal(t, "question", reply.Messages[0].Content)
}

func TestOrchestrator_ReportRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	d.dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return("question", nil).Times(1)
	d.synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, "", nil).AnyTimes()
	key := startInterview(t, o, d, 1)

	d.dialogue.EXPECT().Summarize(gomock.Any(), gomock.Any()).Return("", errors.New("mock err"))
	reply := dispatch(t, o, key, domain.Text{Content: "answer"})
	assert.ErrorIs(t, reply.Err, domain.ErrBackendFailure)
	assert.Equal(t, domain.StageInterview, reply.Stage)

	d.dialogue.EXPECT().Summarize(gomock.Any(), gomock.Any()).Return("Recommend", nil)
	d.history.EXPECT().Append(gomock.Any(), uid, gomock.Any()).Return(int64(1), nil)
	reply = dispatch(t, o, key, domain.Text{Content: "retry"})
	require.NoError(t, reply.Err)
	assert.Equal(t, domain.StageCompleted, reply.Stage)
}

func TestOrchestrator_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	d.dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return("question", nil).Times(1)
	d.synthesizer.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, "", nil).AnyTimes()
	d.dialogue.EXPECT().Summarize(gomock.Any(), gomock.Any()).Return("Do Not Recommend", nil)
	d.history.EXPECT().Append(gomock.Any(), uid, gomock.Any()).Return(int64(0), errors.New("db down"))
	key := startInterview(t, o, d, 1)

	reply := dispatch(t, o, key, domain.Text{Content: "answer"})
	assert.ErrorIs(t, reply.Err, domain.ErrPersistence)
	assert.Equal(t, domain.StageCompleted, reply.Stage)
	var summary bool
	for _, m := range reply.Messages {
		if m.Content == "Interview Summary\n\nDo Not Recommend" {
			summary = true
		}
	}
	assert.True(t, summary)
}

func TestOrchestrator_RestartDuringCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, d := newOrchestrator(t, ctrl)
	key := connect(t, o)
	completeSetup(t, o, key, 3)

	started := make(chan struct{})
	d.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return("resume", nil)
	d.evaluator.EXPECT().Evaluate(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(ctx context.Context, uid int64, req gate.Request) (domain.CandidateProfile, domain.Decision, error) {
			close(started)
			// 一直等到被 restart 取消
			<-ctx.Done()
			return profile(90), domain.DecisionAdmit, nil
		})

	var (
		wg          sync.WaitGroup
		uploadReply orchestrator.Reply
		uploadErr   error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		uploadReply, uploadErr = o.Dispatch(context.Background(), key, uid,
			domain.Upload{Filename: "cv.pdf", Data: []byte("pdf")})
	}()
	<-started
	reply := dispatch(t, o, key, domain.Restart{})
	assert.Equal(t, domain.StageSetupCompany, reply.Stage)
	wg.Wait()

	// 过期的结果被丢弃
	require.NoError(t, uploadErr)
	assert.Empty(t, uploadReply.Messages)
	v := snapshot(t, o, key)
	assert.Equal(t, domain.StageSetupCompany, v.Stage)
	assert.Nil(t, v.Profile)
	assert.Equal(t, 0, v.QuestionsAsked)
}

func TestOrchestrator_Sessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, _ := newOrchestrator(t, ctrl)
	key := connect(t, o)
	other := connect(t, o)
	assert.NotEqual(t, key, other)

	_, err := o.Dispatch(context.Background(), "unknown", uid, domain.Restart{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	// 不是自己的会话
	_, err = o.Dispatch(context.Background(), key, uid+1, domain.Restart{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// 会话之间互不影响
	dispatch(t, o, key, domain.Selection{Stage: domain.StageSetupCompany, Value: "Google"})
	assert.Equal(t, domain.StageSetupExperience, snapshot(t, o, key).Stage)
	assert.Equal(t, domain.StageSetupCompany, snapshot(t, o, other).Stage)

	require.NoError(t, o.Disconnect(context.Background(), key, uid))
	_, err = o.Dispatch(context.Background(), key, uid, domain.Restart{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, o.ReapIdle(context.Background(), time.Millisecond))
	_, err = o.Snapshot(context.Background(), other, uid)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestOrchestrator_ConcurrentSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, _ := newOrchestrator(t, ctrl)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, _, err := o.Connect(context.Background(), uid)
			if !assert.NoError(t, err) {
				return
			}
			for _, sel := range []domain.Selection{
				{Stage: domain.StageSetupCompany, Value: "Amazon"},
				{Stage: domain.StageSetupExperience, Value: "Intern"},
				{Stage: domain.StageSetupRoleCategory, Value: "Product"},
				{Stage: domain.StageSetupRole, Value: "QA Engineer"},
				{Stage: domain.StageSetupQuestions, Value: "3"},
			} {
				reply, err := o.Dispatch(context.Background(), key, uid, sel)
				assert.NoError(t, err)
				assert.NoError(t, reply.Err)
			}
			v, err := o.Snapshot(context.Background(), key, uid)
			assert.NoError(t, err)
			assert.Equal(t, domain.StageAwaitingResume, v.Stage)
		}()
	}
	wg.Wait()
}
