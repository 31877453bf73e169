package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/storage"
	"google.golang.org/genai"
)

// mockProjectRepository は ProjectRepository のモック
type mockProjectRepository struct {
	listFunc    func(ctx context.Context) ([]*model.Project, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Project, error)
	createFunc  func(ctx context.Context, project *model.Project) error
	updateFunc  func(ctx context.Context, project *model.Project) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockMemberRepository は MemberRepository のモック
type mockMemberRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.Member, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.Member, error)
	upsertFunc      func(ctx context.Context, member *model.Member, email string) error
}

func (m *mockMemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockMemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockMemberRepository) Upsert(ctx context.Context, member *model.Member, email string) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, member, email)
	}
	return nil
}

// mockNoteRepository は NoteRepository のインメモリ実装（テスト用）
type mockNoteRepository struct {
	mu       sync.Mutex
	notes    map[string][]model.Note
	replaced int
	listErr  error
	saveErr  error
}

func newMockNoteRepository() *mockNoteRepository {
	return &mockNoteRepository{notes: make(map[string][]model.Note)}
}

func (m *mockNoteRepository) ListByProjectID(_ context.Context, projectID string) ([]model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]model.Note(nil), m.notes[projectID]...), nil
}

func (m *mockNoteRepository) ReplaceForProject(_ context.Context, projectID string, notes []model.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.replaced++
	m.notes[projectID] = append([]model.Note(nil), notes...)
	return nil
}

func (m *mockNoteRepository) saved(projectID string) []model.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notes[projectID]
}

// mockFileRepository は FileRepository のモック
type mockFileRepository struct {
	listFunc    func(ctx context.Context, projectID string) ([]model.ProjectFile, error)
	getByIDFunc func(ctx context.Context, id string) (*model.ProjectFile, error)
	createFunc  func(ctx context.Context, file *model.ProjectFile) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockFileRepository) ListByProjectID(ctx context.Context, projectID string) ([]model.ProjectFile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockFileRepository) GetByID(ctx context.Context, id string) (*model.ProjectFile, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepository) Create(ctx context.Context, file *model.ProjectFile) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, file)
	}
	return nil
}

func (m *mockFileRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockFeedbackRepository は FeedbackRepository のモック
type mockFeedbackRepository struct {
	listFunc   func(ctx context.Context, projectID string) ([]model.LogEntry, error)
	createFunc func(ctx context.Context, entry *model.LogEntry) error
}

func (m *mockFeedbackRepository) ListByProjectID(ctx context.Context, projectID string) ([]model.LogEntry, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockFeedbackRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, entry)
	}
	return nil
}

// memStorage は storage.Storage のインメモリ実装（テスト用）
type memStorage struct {
	mu      sync.Mutex
	files   map[string]string
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string]string)}
}

func (s *memStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = string(b)
	return "/uploads/" + key, nil
}

func (s *memStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.files[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(v)), nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

// mockGenerator は ai.Generator のモック
type mockGenerator struct {
	textFunc func(ctx context.Context, prompt string) (string, error)
	jsonFunc func(ctx context.Context, prompt string, schema *genai.Schema, out any) error
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.textFunc != nil {
		return m.textFunc(ctx, prompt)
	}
	return "", errors.New("not implemented")
}

func (m *mockGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	if m.jsonFunc != nil {
		return m.jsonFunc(ctx, prompt, schema, out)
	}
	return errors.New("not implemented")
}
