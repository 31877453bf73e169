package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/whiteboard"
)

// sessionIdleTTL を超えて触られていないセッションは破棄する
const sessionIdleTTL = 12 * time.Hour

type sessionKey struct {
	projectID string
	memberID  string
}

// canvasSession は1メンバーが開いている1枚のキャンバス
type canvasSession struct {
	mu     sync.Mutex
	canvas *whiteboard.Canvas

	lastUsed time.Time // WhiteboardServiceImpl.mu で保護
}

// WhiteboardServiceImpl は WhiteboardService の実装
type WhiteboardServiceImpl struct {
	projectRepo repository.ProjectRepository
	noteRepo    repository.NoteRepository
	opts        whiteboard.Options
	now         func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*canvasSession
}

// NewWhiteboardService は WhiteboardServiceImpl を生成する
func NewWhiteboardService(projectRepo repository.ProjectRepository, noteRepo repository.NoteRepository, opts whiteboard.Options) WhiteboardService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &WhiteboardServiceImpl{
		projectRepo: projectRepo,
		noteRepo:    noteRepo,
		opts:        opts,
		now:         now,
		sessions:    make(map[sessionKey]*canvasSession),
	}
}

// session は既存のセッションを返す。なければプロジェクトを読み込んでキャンバスを作る。
func (s *WhiteboardServiceImpl) session(ctx context.Context, projectID, memberID string) (*canvasSession, error) {
	key := sessionKey{projectID: projectID, memberID: memberID}

	s.mu.Lock()
	now := s.now()
	s.evictIdleLocked(now)
	sess, ok := s.sessions[key]
	if ok {
		sess.lastUsed = now
	}
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	author, ok := project.MemberByID(memberID)
	if !ok {
		author = model.Member{ID: memberID}
	}
	created := &canvasSession{canvas: whiteboard.NewCanvas(*project, author, s.opts), lastUsed: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 並行リクエストで先に作られていればそちらを使う
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}
	s.sessions[key] = created
	return created, nil
}

func (s *WhiteboardServiceImpl) evictIdleLocked(now time.Time) {
	for key, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > sessionIdleTTL {
			delete(s.sessions, key)
		}
	}
}

// dropProject はプロジェクトの全メンバーのセッションを破棄する
func (s *WhiteboardServiceImpl) dropProject(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.sessions {
		if key.projectID == projectID {
			delete(s.sessions, key)
		}
	}
}

// with はセッションをロックして fn を実行し、最新のビューを返す。
// プロジェクトが消えていればそのプロジェクトのセッションを破棄する。
func (s *WhiteboardServiceImpl) with(ctx context.Context, projectID, memberID string, fn func(c *whiteboard.Canvas) error) (*whiteboard.View, error) {
	sess, err := s.session(ctx, projectID, memberID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := fn(sess.canvas); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.dropProject(projectID)
		}
		return nil, err
	}
	v := sess.canvas.Snapshot()
	return &v, nil
}

// commit は付箋コレクション全体を保存する
func (s *WhiteboardServiceImpl) commit(ctx context.Context, projectID string, notes []model.Note) error {
	if err := s.noteRepo.ReplaceForProject(ctx, projectID, notes); err != nil {
		slog.Error("commit whiteboard notes failed", "project_id", projectID, "error", err)
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

// reload は待機中のキャンバスに保存済みの付箋を読み込み直す。ドラッグ中は何もしない。
func (s *WhiteboardServiceImpl) reload(ctx context.Context, projectID string, c *whiteboard.Canvas) error {
	if _, idle := c.State().(whiteboard.Idle); !idle {
		return nil
	}
	notes, err := s.noteRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	c.ReplaceNotes(notes)
	return nil
}

// edit は保存済みの付箋を読み込み直してから fn を下書きに適用し、保存する。
// fn が false を返したときは保存しない。保存に失敗したら下書きを fn の前に戻す。
func (s *WhiteboardServiceImpl) edit(ctx context.Context, projectID string, c *whiteboard.Canvas, fn func() (bool, error)) error {
	if err := s.reload(ctx, projectID, c); err != nil {
		return err
	}
	before := c.Notes()
	changed, err := fn()
	if err != nil || !changed {
		return err
	}
	if err := s.commit(ctx, projectID, c.Notes()); err != nil {
		c.RestoreNotes(before)
		return err
	}
	return nil
}

// commitMove はドラッグを終えた付箋の位置だけを保存済みのコレクションに反映する
func (s *WhiteboardServiceImpl) commitMove(ctx context.Context, projectID string, c *whiteboard.Canvas, moved model.Note) error {
	stored, err := s.noteRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	set := whiteboard.NewNoteSet(stored)
	if !set.Move(moved.ID, whiteboard.Point{X: moved.X, Y: moved.Y}) {
		// ドラッグ中に他のメンバーが削除した
		c.ReplaceNotes(stored)
		return nil
	}
	if err := s.commit(ctx, projectID, set.All()); err != nil {
		c.ReplaceNotes(stored)
		return err
	}
	c.ReplaceNotes(set.All())
	return nil
}

// View は保存済みの付箋を取り込み直してビューを返す（ドラッグ中は取り込まない）
func (s *WhiteboardServiceImpl) View(ctx context.Context, projectID, memberID string) (*whiteboard.View, error) {
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		return s.reload(ctx, projectID, c)
	})
}

func (s *WhiteboardServiceImpl) SetTool(ctx context.Context, projectID, memberID string, tool whiteboard.Tool) (*whiteboard.View, error) {
	if _, err := whiteboard.ParseTool(string(tool)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		c.SetTool(tool)
		return nil
	})
}

func (s *WhiteboardServiceImpl) SetViewport(ctx context.Context, projectID, memberID string, width, height float64) (*whiteboard.View, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: viewport size must not be negative", ErrInvalidInput)
	}
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		c.SetViewport(width, height)
		return nil
	})
}

// HandlePointer はポインターイベントを状態機械に渡す。
// ドラッグした付箋を離したときだけ保存する。
func (s *WhiteboardServiceImpl) HandlePointer(ctx context.Context, projectID, memberID string, ev PointerEvent) (*whiteboard.View, error) {
	switch ev.Type {
	case PointerDown, PointerMove, PointerUp, PointerLeave:
	default:
		return nil, fmt.Errorf("%w: unknown pointer event %q", ErrInvalidInput, ev.Type)
	}
	p := whiteboard.Point{X: ev.X, Y: ev.Y}
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		switch ev.Type {
		case PointerDown:
			if err := s.reload(ctx, projectID, c); err != nil {
				return err
			}
			c.PointerDown(p, ev.Button)
		case PointerMove:
			c.PointerMove(p)
		case PointerUp, PointerLeave:
			moved, dragging := c.DraggedNote()
			if ev.Type == PointerUp {
				c.PointerUp()
			} else {
				c.PointerLeave()
			}
			if dragging {
				return s.commitMove(ctx, projectID, c, moved)
			}
		}
		return nil
	})
}

func (s *WhiteboardServiceImpl) HandleWheel(ctx context.Context, projectID, memberID string, ev whiteboard.WheelEvent) (*whiteboard.View, error) {
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		c.Wheel(ev)
		return nil
	})
}

func (s *WhiteboardServiceImpl) Zoom(ctx context.Context, projectID, memberID string, in bool) (*whiteboard.View, error) {
	delta := -whiteboard.ZoomStep
	if in {
		delta = whiteboard.ZoomStep
	}
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		c.ZoomBy(delta)
		return nil
	})
}

// AddNote はビューポート中央に空の付箋を追加して保存する
func (s *WhiteboardServiceImpl) AddNote(ctx context.Context, projectID, memberID string, color model.NoteColor) (*model.Note, *whiteboard.View, error) {
	if color == "" {
		color = model.NoteColorYellow
	}
	if !color.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown color %q", ErrInvalidInput, color)
	}
	var added model.Note
	v, err := s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		return s.edit(ctx, projectID, c, func() (bool, error) {
			added = c.AddNote(color)
			return true, nil
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &added, v, nil
}

func (s *WhiteboardServiceImpl) UpdateNoteContent(ctx context.Context, projectID, memberID, noteID, content string) (*whiteboard.View, error) {
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		return s.edit(ctx, projectID, c, func() (bool, error) {
			if !c.UpdateContent(noteID, content) {
				return false, ErrNoteNotFound
			}
			return true, nil
		})
	})
}

// DeleteNote は付箋を削除する。存在しない ID は何もせず成功扱い。
func (s *WhiteboardServiceImpl) DeleteNote(ctx context.Context, projectID, memberID, noteID string) (*whiteboard.View, error) {
	return s.with(ctx, projectID, memberID, func(c *whiteboard.Canvas) error {
		return s.edit(ctx, projectID, c, func() (bool, error) {
			return c.DeleteNote(noteID), nil
		})
	})
}

func (s *WhiteboardServiceImpl) Reset(projectID, memberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey{projectID: projectID, memberID: memberID})
}
