package service

import (
	"context"
	"time"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/timeline"
)

// TimelineService はガントチャート表示用の投影を返す
type TimelineService interface {
	// Overview は全プロジェクトを1つのウィンドウに並べる
	Overview(ctx context.Context) (*timeline.Chart, error)
	// ForProject は1プロジェクトとそのフェーズだけでウィンドウを作る
	ForProject(ctx context.Context, id string) (*timeline.Chart, error)
}

// TimelineServiceImpl は TimelineService の実装
type TimelineServiceImpl struct {
	projectRepo repository.ProjectRepository
	opts        timeline.Options
	now         func() time.Time
}

// NewTimelineService は TimelineServiceImpl を生成する。now が nil なら time.Now を使う。
func NewTimelineService(projectRepo repository.ProjectRepository, opts timeline.Options, now func() time.Time) TimelineService {
	if now == nil {
		now = time.Now
	}
	return &TimelineServiceImpl{projectRepo: projectRepo, opts: opts, now: now}
}

func (s *TimelineServiceImpl) Overview(ctx context.Context) (*timeline.Chart, error) {
	list, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, 0, len(list))
	for _, p := range list {
		projects = append(projects, *p)
	}
	chart := timeline.Build(projects, s.now(), s.opts)
	return &chart, nil
}

func (s *TimelineServiceImpl) ForProject(ctx context.Context, id string) (*timeline.Chart, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	chart := timeline.Build([]model.Project{*p}, s.now(), s.opts)
	return &chart, nil
}
