package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/designflow/backend/internal/ai"
	"github.com/designflow/backend/internal/config"
	"github.com/designflow/backend/internal/handler"
	"github.com/designflow/backend/internal/logging"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/service"
	"github.com/designflow/backend/internal/storage"
	"github.com/designflow/backend/internal/whiteboard"
	"github.com/designflow/backend/pkg/auth"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	projectRepo := repository.NewPgProjectRepository(pool)
	memberRepo := repository.NewPgMemberRepository(pool)
	noteRepo := repository.NewPgNoteRepository(pool)
	fileRepo := repository.NewPgFileRepository(pool)
	feedbackRepo := repository.NewPgFeedbackRepository(pool)
	store := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.URLPrefix)

	// API キー未設定の場合は AI 機能を無効化（nil Generator）
	var gen ai.Generator
	client, err := ai.NewGenAIClient(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		slog.Warn("GEMINI_API_KEY is not set; AI features are disabled")
	case err != nil:
		slog.Error("genai client init failed; AI features are disabled", "error", err)
	default:
		gen = client
	}

	authService := service.NewAuthService(memberRepo)
	projectService := service.NewProjectService(projectRepo)
	whiteboardService := service.NewWhiteboardService(projectRepo, noteRepo, whiteboard.Options{
		Bounds:          whiteboard.ScaleBounds{Min: cfg.Whiteboard.MinScale, Max: cfg.Whiteboard.MaxScale},
		NoteSize:        cfg.Whiteboard.NoteSize,
		WheelZoomFactor: cfg.Whiteboard.WheelZoomFactor,
	})
	timelineService := service.NewTimelineService(projectRepo, cfg.Timeline, nil)
	fileService := service.NewFileService(projectRepo, fileRepo, store)
	analysisService := service.NewAnalysisService(projectRepo, fileRepo, feedbackRepo, store, gen, cfg.AI.MaxFileChars)

	sessionSecret := auth.SessionSecretBytes(cfg.Server.SessionSecret)
	secureCookie := strings.HasPrefix(cfg.Server.FrontendURL, "https://")

	h := handler.New(pool, cfg.Server.FrontendURL)
	authHandler := handler.NewAuthHandler(authService, sessionSecret, secureCookie)
	projectHandler := handler.NewProjectHandler(projectService)
	timelineHandler := handler.NewTimelineHandler(timelineService)
	whiteboardHandler := handler.NewWhiteboardHandler(whiteboardService)
	fileHandler := handler.NewFileHandler(fileService, analysisService)
	feedbackHandler := handler.NewFeedbackHandler(analysisService, authService)
	assistantHandler := handler.NewAssistantHandler(analysisService)

	aiLimiter := handler.NewRateLimiter(cfg.AI.RateLimitPerMinute)
	defer aiLimiter.Close()

	wrapAuth := auth.DevAuth(sessionSecret)
	if cfg.Server.AuthRequired {
		wrapAuth = auth.RequireAuth(sessionSecret)
	} else {
		slog.Warn("AUTH_REQUIRED is not true; unauthenticated requests act as the demo member", "member_id", auth.DevMemberID)
	}
	authed := func(fn http.HandlerFunc) http.Handler {
		return wrapAuth(fn)
	}
	// AI 呼び出しを伴うエンドポイントは IP 単位でレート制限する
	authedAI := func(fn http.HandlerFunc) http.Handler {
		return aiLimiter.Middleware(wrapAuth(fn))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.Health)

	// Auth
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/demo", authHandler.Demo)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/me", authed(authHandler.Me))

	// Projects
	mux.Handle("GET /api/projects", authed(projectHandler.List))
	mux.Handle("POST /api/projects", authed(projectHandler.Create))
	mux.Handle("GET /api/projects/{id}", authed(projectHandler.Get))
	mux.Handle("PUT /api/projects/{id}", authed(projectHandler.Update))
	mux.Handle("DELETE /api/projects/{id}", authed(projectHandler.Delete))

	// Timeline
	mux.Handle("GET /api/timeline", authed(timelineHandler.Overview))
	mux.Handle("GET /api/projects/{id}/timeline", authed(timelineHandler.ForProject))

	// Whiteboard
	mux.Handle("GET /api/projects/{id}/whiteboard", authed(whiteboardHandler.View))
	mux.Handle("DELETE /api/projects/{id}/whiteboard/session", authed(whiteboardHandler.ResetSession))
	mux.Handle("PUT /api/projects/{id}/whiteboard/tool", authed(whiteboardHandler.SetTool))
	mux.Handle("PUT /api/projects/{id}/whiteboard/viewport", authed(whiteboardHandler.SetViewport))
	mux.Handle("POST /api/projects/{id}/whiteboard/pointer", authed(whiteboardHandler.Pointer))
	mux.Handle("POST /api/projects/{id}/whiteboard/wheel", authed(whiteboardHandler.Wheel))
	mux.Handle("POST /api/projects/{id}/whiteboard/zoom", authed(whiteboardHandler.Zoom))
	mux.Handle("POST /api/projects/{id}/whiteboard/notes", authed(whiteboardHandler.AddNote))
	mux.Handle("PATCH /api/projects/{id}/whiteboard/notes/{nid}", authed(whiteboardHandler.UpdateNote))
	mux.Handle("DELETE /api/projects/{id}/whiteboard/notes/{nid}", authed(whiteboardHandler.DeleteNote))

	// Files
	mux.Handle("GET /api/projects/{id}/files", authed(fileHandler.List))
	mux.Handle("POST /api/projects/{id}/files", authed(fileHandler.Upload))
	mux.Handle("GET /api/projects/{id}/files/{fid}/download", authed(fileHandler.Download))
	mux.Handle("DELETE /api/projects/{id}/files/{fid}", authed(fileHandler.Delete))
	mux.Handle("POST /api/projects/{id}/files/{fid}/summary", authedAI(fileHandler.Summary))

	// Feedback & assistant
	mux.Handle("GET /api/projects/{id}/feedback", authed(feedbackHandler.List))
	mux.Handle("POST /api/projects/{id}/feedback", authedAI(feedbackHandler.Create))
	mux.Handle("POST /api/assistant/ask", authedAI(assistantHandler.Ask))

	// アップロード済みファイルの直接配信（ProjectFile.URL の参照先）
	prefix := strings.TrimSuffix(cfg.Storage.URLPrefix, "/")
	mux.Handle("GET "+prefix+"/", wrapAuth(handler.BlobServer(prefix, http.Dir(cfg.Storage.UploadDir))))

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.SecurityHeaders(h.CORS(handler.RequestLogger(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Gemini の応答待ちを含むため長めに取る
		WriteTimeout: 90 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", server.Addr, "auth_required", cfg.Server.AuthRequired, "ai_enabled", gen != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
