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

package engine_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine"
	enginemocks "github.com/ecodeclub/aiinterview/internal/interview/internal/service/engine/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testProfile = domain.CandidateProfile{
		Name:              "Alice",
		Skills:            []string{"Go"},
		YearsOfExperience: 2,
		FitScore:          82,
	}
	testSetup = domain.Setup{
		Company:         "Google",
		ExperienceLevel: "Junior",
		RoleCategory:    "Engineering",
		Role:            "Backend Developer",
		QuestionCount:   5,
	}
)

func newEngine(t *testing.T, dialogue engine.Dialogue, n int, dir string) *engine.Engine {
	setup := testSetup
	setup.QuestionCount = n
	e, err := engine.NewEngine(1, testProfile, setup, dialogue, engine.NewTextReportWriter(dir))
	require.NoError(t, err)
	return e
}

func TestEngine_TurnCounting(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dialogue := enginemocks.NewMockDialogue(ctrl)
			dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, qc engine.QuestionContext) (string, error) {
					return fmt.Sprintf("question %d", qc.QuestionNumber), nil
				}).Times(n)
			e := newEngine(t, dialogue, n, t.TempDir())

			for i := 1; i <= n; i++ {
				assert.False(t, e.ShouldConclude())
				q, err := e.NextQuestion(context.Background())
				require.NoError(t, err)
				assert.Equal(t, fmt.Sprintf("question %d", i), q)
				assert.LessOrEqual(t, e.ResponsesReceived(), e.QuestionsAsked())
				require.NoError(t, e.RecordResponse(fmt.Sprintf("answer %d", i)))
				assert.LessOrEqual(t, e.ResponsesReceived(), e.QuestionsAsked())
			}
			assert.True(t, e.ShouldConclude())
			assert.Equal(t, n, e.QuestionsAsked())
			assert.Equal(t, n, e.ResponsesReceived())

			// 结束之后不能再提问
			_, err := e.NextQuestion(context.Background())
			assert.ErrorIs(t, err, domain.ErrContract)
		})
	}
}

func TestEngine_Contract(t *testing.T) {
	testCases := []struct {
		name    string
		steps   func(e *engine.Engine) error
		wantErr error
		// 调用失败之后的计数
		wantAsked     int
		wantResponses int
	}{
		{
			name: "还没提问就回答",
			steps: func(e *engine.Engine) error {
				return e.RecordResponse("hello")
			},
			wantErr: domain.ErrContract,
		},
		{
			name: "连续回答两次",
			steps: func(e *engine.Engine) error {
				if _, err := e.NextQuestion(context.Background()); err != nil {
					return err
				}
				if err := e.RecordResponse("a1"); err != nil {
					return err
				}
				return e.RecordResponse("a2")
			},
			wantErr:       domain.ErrContract,
			wantAsked:     1,
			wantResponses: 1,
		},
		{
			name: "连续提问两次",
			steps: func(e *engine.Engine) error {
				if _, err := e.NextQuestion(context.Background()); err != nil {
					return err
				}
				_, err := e.NextQuestion(context.Background())
				return err
			},
			wantErr:   domain.ErrContract,
			wantAsked: 1,
		},
		{
			name: "提前生成报告",
			steps: func(e *engine.Engine) error {
				if _, err := e.NextQuestion(context.Background()); err != nil {
					return err
				}
				_, err := e.BuildReport(context.Background())
				return err
			},
			wantErr:   domain.ErrPrematureReport,
			wantAsked: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dialogue := enginemocks.NewMockDialogue(ctrl)
			dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return("q", nil).AnyTimes()
			e := newEngine(t, dialogue, 3, t.TempDir())
			err := tc.steps(e)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantAsked, e.QuestionsAsked())
			assert.Equal(t, tc.wantResponses, e.ResponsesReceived())
		})
	}
}

func TestEngine_FallbackQuestion(t *testing.T) {
	testCases := []struct {
		name   string
		answer string
		err    error
	}{
		{name: "大模型不可用", err: errors.New("mock err")},
		{name: "返回空白", answer: "  \n"},
		{name: "超时", err: context.DeadlineExceeded},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dialogue := enginemocks.NewMockDialogue(ctrl)
			dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(tc.answer, tc.err)
			e := newEngine(t, dialogue, 2, t.TempDir())
			q, err := e.NextQuestion(context.Background())
			require.NoError(t, err)
			assert.Equal(t, engine.FallbackQuestion, q)
			assert.Equal(t, 1, e.QuestionsAsked())
			assert.Equal(t, domain.Conversation{
				{Role: domain.RoleInterviewer, Content: engine.FallbackQuestion},
			}, e.Conversation())
		})
	}
}

func TestEngine_BuildReport(t *testing.T) {
	const summary = `1. Overall Assessment: solid, Overall 7/10
2. Technical Skills: 8/10
3. Communication Skills: 6 / 10
6. Final Recommendation: Recommend`
	ctrl := gomock.NewController(t)
	dialogue := enginemocks.NewMockDialogue(ctrl)
	dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, qc engine.QuestionContext) (string, error) {
			return fmt.Sprintf("question %d", qc.QuestionNumber), nil
		}).Times(2)
	var want domain.Conversation
	dialogue.EXPECT().Summarize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, sc engine.SummaryContext) (string, error) {
			assert.Equal(t, want, sc.Conversation)
			assert.Equal(t, testProfile, sc.Profile)
			return summary, nil
		})
	dir := t.TempDir()
	e := newEngine(t, dialogue, 2, dir)
	for i := 1; i <= 2; i++ {
		q, err := e.NextQuestion(context.Background())
		require.NoError(t, err)
		a := fmt.Sprintf("answer %d", i)
		require.NoError(t, e.RecordResponse(a))
		want = append(want,
			domain.Utterance{Role: domain.RoleInterviewer, Content: q},
			domain.Utterance{Role: domain.RoleCandidate, Content: a})
	}

	report, err := e.BuildReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, report.Conversation)
	assert.Equal(t, summary, report.Summary)
	assert.Equal(t, domain.RecommendationRecommend, report.Recommendation)
	assert.Equal(t, domain.Ratings{Technical: 8, Communication: 6, Overall: 7}, report.Ratings)
	assert.Equal(t, 2, report.Questions())
	assert.True(t, report.Ctime > 0)

	// 写两次得到两个独立的文件
	assert.True(t, e.PersistAsText(context.Background(), report))
	assert.True(t, e.PersistAsText(context.Background(), report))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].Name(), entries[1].Name())
	for _, entry := range entries {
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		assert.Equal(t, engine.RenderText(report), string(content))
		// 对话原样按顺序出现在报告里
		idx := 0
		for _, u := range want {
			line := fmt.Sprintf("[%s]: %s", u.Role.Label(), u.Content)
			pos := strings.Index(string(content[idx:]), line)
			require.GreaterOrEqual(t, pos, 0, line)
			idx += pos + len(line)
		}
	}
}

func TestEngine_BuildReportFailed(t *testing.T) {
	testCases := []struct {
		name    string
		summary string
		err     error
	}{
		{name: "大模型失败", err: errors.New("mock err")},
		{name: "总结为空", summary: " "},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dialogue := enginemocks.NewMockDialogue(ctrl)
			dialogue.EXPECT().Ask(gomock.Any(), gomock.Any()).Return("q", nil)
			dialogue.EXPECT().Summarize(gomock.Any(), gomock.Any()).Return(tc.summary, tc.err)
			e := newEngine(t, dialogue, 1, t.TempDir())
			_, err := e.NextQuestion(context.Background())
			require.NoError(t, err)
			require.NoError(t, e.RecordResponse("a"))
			_, err = e.BuildReport(context.Background())
			assert.ErrorIs(t, err, domain.ErrBackendFailure)
			// 失败之后仍然处于结束状态，可以重试
			assert.True(t, e.ShouldConclude())
		})
	}
}

func TestEngine_PersistFailed(t *testing.T) {
	// 用一个普通文件占住目录的位置
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	ctrl := gomock.NewController(t)
	e := newEngine(t, enginemocks.NewMockDialogue(ctrl), 1, file)
	assert.False(t, e.PersistAsText(context.Background(), domain.InterviewReport{}))
}

func TestNewEngine(t *testing.T) {
	setup := testSetup
	setup.QuestionCount = 0
	_, err := engine.NewEngine(1, testProfile, setup, nil, nil)
	assert.ErrorIs(t, err, domain.ErrContract)
}

func TestRenderText(t *testing.T) {
	report := domain.InterviewReport{
		Profile: testProfile,
		Setup:   testSetup,
		Conversation: domain.Conversation{
			{Role: domain.RoleInterviewer, Content: "Tell me about yourself."},
			{Role: domain.RoleCandidate, Content: "I write Go."},
		},
		Summary: "Recommend",
		Ctime:   0,
	}
	text := engine.RenderText(report)
	lines := strings.Split(text, "\n")
	assert.Equal(t, strings.Repeat("=", 80), lines[0])
	assert.Equal(t, "AUTONOMOUS RECRUITMENT AGENT - INTERVIEW REPORT", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "Date: "))
	assert.Equal(t, []string{
		"Candidate: Alice",
		"Company: Google",
		"Role: Backend Developer",
		"Experience Level: Junior",
		"Fit Score: 82/100",
	}, lines[4:9])
	assert.Contains(t, text, "INTERVIEW TRANSCRIPT\n"+strings.Repeat("-", 80)+"\n\n"+
		"[Interviewer]: Tell me about yourself.\n\n[Candidate]: I write Go.\n\n")
	assert.True(t, strings.HasSuffix(text, "INTERVIEW SUMMARY\n"+strings.Repeat("=", 80)+"\n\nRecommend\n"))
}

func TestParseRatings(t *testing.T) {
	testCases := []struct {
		name    string
		summary string
		want    domain.Ratings
	}{
		{
			name:    "全部给出",
			summary: "Technical Skills: 9/10\nCommunication: 7/10\nOverall Rating: 8/10",
			want:    domain.Ratings{Technical: 9, Communication: 7, Overall: 8},
		},
		{
			name:    "没有评分",
			summary: "The candidate did fine.",
		},
		{
			name:    "评分在标题下一行",
			summary: "Technical Skills:\n  Solid fundamentals, 7/10\nCommunication Skills:\n6/10\nOverall Assessment:\nScore 8 / 10",
			want:    domain.Ratings{Technical: 7, Communication: 6, Overall: 8},
		},
		{
			name:    "隔了两行不算",
			summary: "Overall Assessment:\nGood.\nMore text 7/10",
		},
		{
			name:    "超出范围",
			summary: "Technical: 11/10",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, engine.ParseRatings(tc.summary))
		})
	}
}
