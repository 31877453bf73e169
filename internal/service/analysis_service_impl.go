package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/designflow/backend/internal/ai"
	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/storage"
)

// AnalysisServiceImpl は AnalysisService の実装。gen が nil の場合は AI 未設定として振る舞う。
type AnalysisServiceImpl struct {
	projectRepo  repository.ProjectRepository
	fileRepo     repository.FileRepository
	feedbackRepo repository.FeedbackRepository
	store        storage.Storage
	gen          ai.Generator
	maxFileChars int
}

// NewAnalysisService は AnalysisServiceImpl を生成する
func NewAnalysisService(
	projectRepo repository.ProjectRepository,
	fileRepo repository.FileRepository,
	feedbackRepo repository.FeedbackRepository,
	store storage.Storage,
	gen ai.Generator,
	maxFileChars int,
) AnalysisService {
	return &AnalysisServiceImpl{
		projectRepo:  projectRepo,
		fileRepo:     fileRepo,
		feedbackRepo: feedbackRepo,
		store:        store,
		gen:          gen,
		maxFileChars: maxFileChars,
	}
}

func (s *AnalysisServiceImpl) AnalyzeFeedback(ctx context.Context, projectID, author, rawText string) (*model.LogEntry, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil, fmt.Errorf("%w: feedback text is required", ErrInvalidInput)
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if s.gen == nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, ai.ErrNotConfigured)
	}

	var analysis model.FeedbackAnalysis
	prompt := ai.FeedbackPrompt(rawText, project.CurrentPhase)
	if err := s.gen.GenerateJSON(ctx, prompt, ai.FeedbackAnalysisSchema(), &analysis); err != nil {
		slog.Error("feedback analysis failed", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	if analysis.KeyRequests == nil {
		analysis.KeyRequests = []string{}
	}
	if analysis.Ambiguities == nil {
		analysis.Ambiguities = []string{}
	}
	if analysis.SuggestedQuestions == nil {
		analysis.SuggestedQuestions = []string{}
	}

	entry := &model.LogEntry{
		ProjectID: projectID,
		Author:    author,
		RawText:   rawText,
		Analysis:  &analysis,
	}
	if err := s.feedbackRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return entry, nil
}

func (s *AnalysisServiceImpl) ListFeedback(ctx context.Context, projectID string) ([]model.LogEntry, error) {
	return s.feedbackRepo.ListByProjectID(ctx, projectID)
}

func (s *AnalysisServiceImpl) SummarizeFile(ctx context.Context, projectID, fileID string) (string, error) {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && f.ProjectID != projectID) {
		return "", ErrFileNotFound
	}
	if err != nil {
		return "", err
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if s.gen == nil {
		slog.Warn("summarize skipped", "error", ai.ErrNotConfigured)
		return SummaryFailedText, nil
	}

	content, err := s.summarySource(ctx, project, f)
	if err != nil {
		slog.Error("read file for summary failed", "file_id", fileID, "error", err)
		return SummaryFailedText, nil
	}
	text, err := s.gen.GenerateText(ctx, ai.SummaryPrompt(f.Name, content, s.maxFileChars))
	switch {
	case errors.Is(err, ai.ErrEmptyResponse):
		return SummaryEmptyText, nil
	case err != nil:
		slog.Error("summarize file failed", "file_id", fileID, "error", err)
		return SummaryFailedText, nil
	}
	return text, nil
}

// summarySource はテキスト系ファイルなら本文を、それ以外ならメタデータとプロジェクト情報を返す
func (s *AnalysisServiceImpl) summarySource(ctx context.Context, project *model.Project, f *model.ProjectFile) (string, error) {
	if !isTextType(f.Type) {
		return fmt.Sprintf("Project: %s\nClient: %s\nPhase: %s\nDescription: %s\nFile: %s (%s, %d bytes, uploaded by %s)",
			project.Name, project.Client, project.CurrentPhase.Label(), project.Description,
			f.Name, f.Type, f.Size, f.UploadedBy), nil
	}
	rc, err := s.store.Open(ctx, f.StorageKey)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxSummarySourceSize))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func isTextType(t string) bool {
	switch {
	case strings.HasPrefix(t, "text/"):
		return true
	case t == "application/json", t == "application/xml", t == "application/yaml":
		return true
	}
	return false
}

func (s *AnalysisServiceImpl) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	list, err := s.projectRepo.List(ctx)
	if err != nil {
		return "", err
	}
	if s.gen == nil {
		slog.Warn("assistant skipped", "error", ai.ErrNotConfigured)
		return AssistantFailedText, nil
	}
	projects := make([]model.Project, 0, len(list))
	for _, p := range list {
		projects = append(projects, *p)
	}
	prompt, err := ai.AssistantPrompt(query, projects)
	if err != nil {
		return "", err
	}
	text, err := s.gen.GenerateText(ctx, prompt)
	switch {
	case errors.Is(err, ai.ErrEmptyResponse):
		return AssistantEmptyText, nil
	case err != nil:
		slog.Error("assistant failed", "error", err)
		return AssistantFailedText, nil
	}
	return text, nil
}
