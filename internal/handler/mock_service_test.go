package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/service"
	"github.com/designflow/backend/internal/timeline"
	"github.com/designflow/backend/internal/whiteboard"
	"github.com/designflow/backend/pkg/auth"
)

// withMember は認証済みリクエストを作る
func withMember(r *http.Request, memberID string) *http.Request {
	return r.WithContext(auth.WithMemberID(r.Context(), memberID))
}

// mockProjectService は ProjectService のモック
type mockProjectService struct {
	listFunc    func(ctx context.Context) ([]*model.Project, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Project, error)
	createFunc  func(ctx context.Context, project *model.Project) error
	updateFunc  func(ctx context.Context, project *model.Project) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockProjectService) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectService) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectService) Update(ctx context.Context, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockAuthService は AuthService のモック
type mockAuthService struct {
	loginFunc     func(ctx context.Context, email, password string) (*model.Member, error)
	demoLoginFunc func(ctx context.Context) (*model.Member, error)
	meFunc        func(ctx context.Context, memberID string) (*model.Member, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.Member, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidInput
}

func (m *mockAuthService) DemoLogin(ctx context.Context) (*model.Member, error) {
	if m.demoLoginFunc != nil {
		return m.demoLoginFunc(ctx)
	}
	d := service.DemoMember
	return &d, nil
}

func (m *mockAuthService) Me(ctx context.Context, memberID string) (*model.Member, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx, memberID)
	}
	return nil, repository.ErrNotFound
}

// mockTimelineService は TimelineService のモック
type mockTimelineService struct {
	overviewFunc   func(ctx context.Context) (*timeline.Chart, error)
	forProjectFunc func(ctx context.Context, id string) (*timeline.Chart, error)
}

func (m *mockTimelineService) Overview(ctx context.Context) (*timeline.Chart, error) {
	if m.overviewFunc != nil {
		return m.overviewFunc(ctx)
	}
	return &timeline.Chart{}, nil
}

func (m *mockTimelineService) ForProject(ctx context.Context, id string) (*timeline.Chart, error) {
	if m.forProjectFunc != nil {
		return m.forProjectFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

// mockWhiteboardService は WhiteboardService のモック。未設定の操作は空のビューを返す。
type mockWhiteboardService struct {
	viewFunc          func(ctx context.Context, projectID, memberID string) (*whiteboard.View, error)
	setToolFunc       func(ctx context.Context, projectID, memberID string, tool whiteboard.Tool) (*whiteboard.View, error)
	setViewportFunc   func(ctx context.Context, projectID, memberID string, width, height float64) (*whiteboard.View, error)
	pointerFunc       func(ctx context.Context, projectID, memberID string, ev service.PointerEvent) (*whiteboard.View, error)
	wheelFunc         func(ctx context.Context, projectID, memberID string, ev whiteboard.WheelEvent) (*whiteboard.View, error)
	zoomFunc          func(ctx context.Context, projectID, memberID string, in bool) (*whiteboard.View, error)
	addNoteFunc       func(ctx context.Context, projectID, memberID string, color model.NoteColor) (*model.Note, *whiteboard.View, error)
	updateContentFunc func(ctx context.Context, projectID, memberID, noteID, content string) (*whiteboard.View, error)
	deleteNoteFunc    func(ctx context.Context, projectID, memberID, noteID string) (*whiteboard.View, error)
	resetFunc         func(projectID, memberID string)
}

func emptyView(projectID string) *whiteboard.View {
	return &whiteboard.View{ProjectID: projectID, Transform: whiteboard.DefaultTransform(), State: "idle", Notes: []whiteboard.NoteView{}}
}

func (m *mockWhiteboardService) View(ctx context.Context, projectID, memberID string) (*whiteboard.View, error) {
	if m.viewFunc != nil {
		return m.viewFunc(ctx, projectID, memberID)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) SetTool(ctx context.Context, projectID, memberID string, tool whiteboard.Tool) (*whiteboard.View, error) {
	if m.setToolFunc != nil {
		return m.setToolFunc(ctx, projectID, memberID, tool)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) SetViewport(ctx context.Context, projectID, memberID string, width, height float64) (*whiteboard.View, error) {
	if m.setViewportFunc != nil {
		return m.setViewportFunc(ctx, projectID, memberID, width, height)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) HandlePointer(ctx context.Context, projectID, memberID string, ev service.PointerEvent) (*whiteboard.View, error) {
	if m.pointerFunc != nil {
		return m.pointerFunc(ctx, projectID, memberID, ev)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) HandleWheel(ctx context.Context, projectID, memberID string, ev whiteboard.WheelEvent) (*whiteboard.View, error) {
	if m.wheelFunc != nil {
		return m.wheelFunc(ctx, projectID, memberID, ev)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) Zoom(ctx context.Context, projectID, memberID string, in bool) (*whiteboard.View, error) {
	if m.zoomFunc != nil {
		return m.zoomFunc(ctx, projectID, memberID, in)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) AddNote(ctx context.Context, projectID, memberID string, color model.NoteColor) (*model.Note, *whiteboard.View, error) {
	if m.addNoteFunc != nil {
		return m.addNoteFunc(ctx, projectID, memberID, color)
	}
	return &model.Note{ID: "n-new", Color: color}, emptyView(projectID), nil
}

func (m *mockWhiteboardService) UpdateNoteContent(ctx context.Context, projectID, memberID, noteID, content string) (*whiteboard.View, error) {
	if m.updateContentFunc != nil {
		return m.updateContentFunc(ctx, projectID, memberID, noteID, content)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) DeleteNote(ctx context.Context, projectID, memberID, noteID string) (*whiteboard.View, error) {
	if m.deleteNoteFunc != nil {
		return m.deleteNoteFunc(ctx, projectID, memberID, noteID)
	}
	return emptyView(projectID), nil
}

func (m *mockWhiteboardService) Reset(projectID, memberID string) {
	if m.resetFunc != nil {
		m.resetFunc(projectID, memberID)
	}
}

// mockFileService は FileService のモック
type mockFileService struct {
	listFunc   func(ctx context.Context, projectID string) ([]model.ProjectFile, error)
	uploadFunc func(ctx context.Context, projectID, memberID string, up service.FileUpload) (*model.ProjectFile, error)
	openFunc   func(ctx context.Context, projectID, fileID string) (*model.ProjectFile, io.ReadCloser, error)
	deleteFunc func(ctx context.Context, projectID, fileID string) error
}

func (m *mockFileService) List(ctx context.Context, projectID string) ([]model.ProjectFile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockFileService) Upload(ctx context.Context, projectID, memberID string, up service.FileUpload) (*model.ProjectFile, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, projectID, memberID, up)
	}
	return &model.ProjectFile{ID: "f-new", ProjectID: projectID, Name: up.Name}, nil
}

func (m *mockFileService) Open(ctx context.Context, projectID, fileID string) (*model.ProjectFile, io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, projectID, fileID)
	}
	return nil, nil, service.ErrFileNotFound
}

func (m *mockFileService) Delete(ctx context.Context, projectID, fileID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, projectID, fileID)
	}
	return nil
}

// mockAnalysisService は AnalysisService のモック
type mockAnalysisService struct {
	analyzeFunc   func(ctx context.Context, projectID, author, rawText string) (*model.LogEntry, error)
	listFunc      func(ctx context.Context, projectID string) ([]model.LogEntry, error)
	summarizeFunc func(ctx context.Context, projectID, fileID string) (string, error)
	askFunc       func(ctx context.Context, query string) (string, error)
}

func (m *mockAnalysisService) AnalyzeFeedback(ctx context.Context, projectID, author, rawText string) (*model.LogEntry, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, projectID, author, rawText)
	}
	return nil, service.ErrAnalysisFailed
}

func (m *mockAnalysisService) ListFeedback(ctx context.Context, projectID string) ([]model.LogEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockAnalysisService) SummarizeFile(ctx context.Context, projectID, fileID string) (string, error) {
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, projectID, fileID)
	}
	return service.SummaryFailedText, nil
}

func (m *mockAnalysisService) Ask(ctx context.Context, query string) (string, error) {
	if m.askFunc != nil {
		return m.askFunc(ctx, query)
	}
	return service.AssistantFailedText, nil
}
