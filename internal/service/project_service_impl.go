package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/timeline"
)

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService は ProjectServiceImpl を生成する（DI: ProjectRepository を注入）
func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo}
}

// List はプロジェクト一覧を取得する
func (s *ProjectServiceImpl) List(ctx context.Context) ([]*model.Project, error) {
	return s.projectRepo.List(ctx)
}

// GetByID は ID でプロジェクトを取得する
func (s *ProjectServiceImpl) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// Create はプロジェクトを作成する。状態とフェーズが空なら planning / research にする。
func (s *ProjectServiceImpl) Create(ctx context.Context, project *model.Project) error {
	if project.Status == "" {
		project.Status = model.ProjectStatusPlanning
	}
	if project.CurrentPhase == "" {
		project.CurrentPhase = model.DesignPhaseResearch
	}
	if err := normalizeProject(project); err != nil {
		return err
	}
	return s.projectRepo.Create(ctx, project)
}

// Update はプロジェクトを更新する
func (s *ProjectServiceImpl) Update(ctx context.Context, project *model.Project) error {
	if err := normalizeProject(project); err != nil {
		return err
	}
	return s.projectRepo.Update(ctx, project)
}

// Delete はプロジェクトを削除する
func (s *ProjectServiceImpl) Delete(ctx context.Context, id string) error {
	return s.projectRepo.Delete(ctx, id)
}

// normalizeProject は必須項目と列挙値を検証し、進捗を 0-100 に収める
func normalizeProject(p *model.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status)
	}
	if !p.CurrentPhase.Valid() {
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, p.CurrentPhase)
	}
	for _, d := range []string{p.StartDate, p.DueDate} {
		if d == "" {
			continue
		}
		if _, ok := timeline.ParseDate(d); !ok {
			return fmt.Errorf("%w: bad date %q", ErrInvalidInput, d)
		}
	}
	p.Progress = min(max(p.Progress, 0), 100)
	return nil
}
