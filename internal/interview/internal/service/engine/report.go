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

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ecodeclub/aiinterview/internal/interview/internal/domain"
	"github.com/lithammer/shortuuid/v4"
	"github.com/lukasjarosch/go-docx"
)

const (
	reportTitle = "AUTONOMOUS RECRUITMENT AGENT - INTERVIEW REPORT"
	dateLayout  = "2006-01-02 15:04:05"
	fileLayout  = "20060102_150405"
)

var (
	heavyLine = strings.Repeat("=", 80)
	lightLine = strings.Repeat("-", 80)
)

// ReportWriter 把报告写到某个持久化的地方，返回写入的位置
type ReportWriter interface {
	Write(ctx context.Context, report domain.InterviewReport) (string, error)
}

// TextReportWriter 每次调用都会生成一个新的文件，不会覆盖已有的报告
type TextReportWriter struct {
	dir string
}

func NewTextReportWriter(dir string) *TextReportWriter {
	return &TextReportWriter{dir: dir}
}

func (w *TextReportWriter) Write(_ context.Context, report domain.InterviewReport) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: 创建报告目录失败: %w", domain.ErrPersistence, err)
	}
	path := filepath.Join(w.dir, reportFilename(report, ".txt"))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: 创建报告文件失败: %w", domain.ErrPersistence, err)
	}
	_, err = f.WriteString(RenderText(report))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: 写入报告失败: %w", domain.ErrPersistence, err)
	}
	return path, nil
}

func reportFilename(report domain.InterviewReport, ext string) string {
	ts := time.UnixMilli(report.Ctime).Format(fileLayout)
	return fmt.Sprintf("interview_report_%s_%s%s", ts, shortuuid.New(), ext)
}

// RenderText 报告的文本格式，字段顺序固定
func RenderText(report domain.InterviewReport) string {
	var sb strings.Builder
	sb.WriteString(heavyLine + "\n")
	sb.WriteString(reportTitle + "\n")
	sb.WriteString(heavyLine + "\n")
	fmt.Fprintf(&sb, "Date: %s\n", time.UnixMilli(report.Ctime).Format(dateLayout))
	fmt.Fprintf(&sb, "Candidate: %s\n", report.Profile.Name)
	fmt.Fprintf(&sb, "Company: %s\n", report.Setup.Company)
	fmt.Fprintf(&sb, "Role: %s\n", report.Setup.Role)
	fmt.Fprintf(&sb, "Experience Level: %s\n", report.Setup.ExperienceLevel)
	fmt.Fprintf(&sb, "Fit Score: %d/100\n", report.Profile.FitScore)
	sb.WriteString(heavyLine + "\n\n")
	sb.WriteString("INTERVIEW TRANSCRIPT\n")
	sb.WriteString(lightLine + "\n\n")
	sb.WriteString(renderTranscript(report.Conversation))
	sb.WriteString(heavyLine + "\n")
	sb.WriteString("INTERVIEW SUMMARY\n")
	sb.WriteString(heavyLine + "\n\n")
	sb.WriteString(report.Summary)
	sb.WriteString("\n")
	return sb.String()
}

func renderTranscript(conversation domain.Conversation) string {
	var sb strings.Builder
	for _, u := range conversation {
		fmt.Fprintf(&sb, "[%s]: %s\n\n", u.Role.Label(), u.Content)
	}
	return sb.String()
}

// DocxReportWriter 使用 docx 模版导出报告，模版里面使用 {candidate} 这种占位符
type DocxReportWriter struct {
	template string
	dir      string
}

func NewDocxReportWriter(template, dir string) *DocxReportWriter {
	return &DocxReportWriter{template: template, dir: dir}
}

func (w *DocxReportWriter) Write(_ context.Context, report domain.InterviewReport) (string, error) {
	doc, err := docx.Open(w.template)
	if err != nil {
		return "", fmt.Errorf("%w: 打开模版docx文件失败: %w", domain.ErrPersistence, err)
	}
	err = doc.ReplaceAll(docx.PlaceholderMap{
		"title":          reportTitle,
		"date":           time.UnixMilli(report.Ctime).Format(dateLayout),
		"candidate":      report.Profile.Name,
		"company":        report.Setup.Company,
		"role":           report.Setup.Role,
		"level":          report.Setup.ExperienceLevel,
		"score":          report.Profile.FitScore,
		"recommendation": string(report.Recommendation),
		"transcript":     renderTranscript(report.Conversation),
		"summary":        report.Summary,
	})
	if err != nil {
		return "", fmt.Errorf("%w: 替换元素失败: %w", domain.ErrPersistence, err)
	}
	if err = os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: 创建报告目录失败: %w", domain.ErrPersistence, err)
	}
	path := filepath.Join(w.dir, reportFilename(report, ".docx"))
	if err = doc.WriteToFile(path); err != nil {
		return "", fmt.Errorf("%w: 写入docx失败: %w", domain.ErrPersistence, err)
	}
	return path, nil
}

var (
	technicalExpr     = regexp.MustCompile(`(?i)technical[^\n\d]{0,40}?(?:\n[^\n\d]{0,40}?)?(\d{1,2})\s*/\s*10`)
	communicationExpr = regexp.MustCompile(`(?i)communication[^\n\d]{0,40}?(?:\n[^\n\d]{0,40}?)?(\d{1,2})\s*/\s*10`)
	overallExpr       = regexp.MustCompile(`(?i)overall[^\n\d]{0,40}?(?:\n[^\n\d]{0,40}?)?(\d{1,2})\s*/\s*10`)
)

// ParseRatings 从总结里面找 "Technical ... 7/10" 这种评分，分数可以在标题的下一行，找不到就是 0
func ParseRatings(summary string) domain.Ratings {
	return domain.Ratings{
		Technical:     findRating(technicalExpr, summary),
		Communication: findRating(communicationExpr, summary),
		Overall:       findRating(overallExpr, summary),
	}
}

func findRating(expr *regexp.Regexp, summary string) int {
	m := expr.FindStringSubmatch(summary)
	if len(m) < 2 {
		return 0
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v > 10 {
		return 0
	}
	return v
}
