package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo studio projects (replaces existing demo rows)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withPool(cmd.Context(), runSeed)
	},
}

type seedProject struct {
	Project model.Project
	Notes   []model.Note
	Files   []model.ProjectFile
}

func avatar(seed, bg string) string {
	return "https://api.dicebear.com/7.x/notionists/svg?seed=" + seed + "&backgroundColor=" + bg
}

var (
	memberAlex  = model.Member{ID: "u1", Name: "Alex Chen", Role: "Senior Industrial Designer", Avatar: avatar("Alex", "e0e7ff")}
	memberSarah = model.Member{ID: "u2", Name: "Sarah", Role: "3D Modeler", Avatar: avatar("Sarah", "fce7f3")}
	memberMike  = model.Member{ID: "u3", Name: "Mike", Role: "Mechanical Engineer", Avatar: avatar("Mike", "dbeafe")}
	memberJen   = model.Member{ID: "u4", Name: "Jen", Role: "CMF Designer", Avatar: avatar("Jen", "ffedd5")}
	memberDavid = model.Member{ID: "u5", Name: "David", Role: "Industrial Designer", Avatar: avatar("David", "f3e8ff")}
)

func seedMembers() []model.Member {
	return []model.Member{memberAlex, memberSarah, memberMike, memberJen, memberDavid}
}

func noteAt(ts string) time.Time {
	t, _ := time.Parse(time.RFC3339, ts)
	return t
}

func seedProjects() []seedProject {
	return []seedProject{
		{
			Project: model.Project{
				ID:           "p1",
				Name:         "Nebula Smart Pour-Over Coffee Maker",
				Client:       "Nebula Home",
				Description:  "A minimalist, app-connected pour-over coffee maker for young urban professionals.",
				Thumbnail:    "https://picsum.photos/400/300",
				Status:       model.ProjectStatusReview,
				Progress:     45,
				CurrentPhase: model.DesignPhaseConcept,
				StartDate:    "2023-10-01",
				DueDate:      "2023-12-15",
				Team:         []model.Member{memberAlex, memberSarah},
				Phases: []model.ProjectPhase{
					{ID: "ph1", Name: "User Research", StartDate: "2023-10-01", EndDate: "2023-10-15", Status: model.PhaseStatusCompleted},
					{ID: "ph2", Name: "Concept Sketching", StartDate: "2023-10-16", EndDate: "2023-11-05", Status: model.PhaseStatusCompleted},
					{ID: "ph3", Name: "3D Modeling", StartDate: "2023-11-06", EndDate: "2023-11-25", Status: model.PhaseStatusInProgress},
					{ID: "ph4", Name: "Prototype Build", StartDate: "2023-11-26", EndDate: "2023-12-10", Status: model.PhaseStatusPending},
				},
			},
			Notes: []model.Note{
				{ID: "n1", X: 100, Y: 100, Content: `Emphasize the "ritual": a light effect while the water pours.`, Color: model.NoteColorYellow, AuthorID: "u1", CreatedAt: noteAt("2023-11-20T10:00:00Z")},
				{ID: "n2", X: 400, Y: 150, Content: "Materials: try matte black with copper metal?", Color: model.NoteColorBlue, AuthorID: "u2", CreatedAt: noteAt("2023-11-20T10:05:00Z")},
				{ID: "n3", X: 200, Y: 400, Content: "Don't forget app pairing. It has to finish within 3 seconds.", Color: model.NoteColorRed, AuthorID: "u1", CreatedAt: noteAt("2023-11-20T10:10:00Z")},
			},
			Files: []model.ProjectFile{
				{ID: "f1", Name: "user_research_report_v1.pdf", Type: "application/pdf", Size: 2500000, StorageKey: "seed/p1/f1.pdf", UploadedBy: "Alex Chen"},
				{ID: "f2", Name: "competitor_matrix.png", Type: "image/png", Size: 1200000, StorageKey: "seed/p1/f2.png", UploadedBy: "Sarah"},
			},
		},
		{
			Project: model.Project{
				ID:           "p2",
				Name:         "ErgoLife Ergonomic Office Chair",
				Client:       "ErgoLife Inc.",
				Description:  "Next-generation ergonomic chair focused on lumbar support and sustainable materials.",
				Thumbnail:    "https://picsum.photos/400/301",
				Status:       model.ProjectStatusInProgress,
				Progress:     70,
				CurrentPhase: model.DesignPhasePrototyping,
				StartDate:    "2023-09-01",
				DueDate:      "2024-01-20",
				Team:         []model.Member{memberAlex, memberMike, memberJen},
				Phases: []model.ProjectPhase{
					{ID: "ph1", Name: "Ergonomic Data Collection", StartDate: "2023-09-01", EndDate: "2023-09-20", Status: model.PhaseStatusCompleted},
					{ID: "ph2", Name: "Mechanism Design", StartDate: "2023-09-21", EndDate: "2023-11-15", Status: model.PhaseStatusCompleted},
					{ID: "ph3", Name: "Prototype Testing", StartDate: "2023-11-16", EndDate: "2024-01-10", Status: model.PhaseStatusInProgress},
				},
			},
		},
		{
			Project: model.Project{
				ID:           "p3",
				Name:         "Sonic ANC Bluetooth Headphones",
				Client:       "Sonic Audio",
				Description:  "Affordable active noise cancelling headphones with custom color options and long battery life.",
				Thumbnail:    "https://picsum.photos/400/302",
				Status:       model.ProjectStatusPlanning,
				Progress:     10,
				CurrentPhase: model.DesignPhaseResearch,
				StartDate:    "2024-01-01",
				DueDate:      "2024-03-01",
				Team:         []model.Member{memberAlex},
			},
		},
		{
			Project: model.Project{
				ID:           "p4",
				Name:         "Modular Camping Lantern",
				Client:       "WildGear",
				Description:  "A stackable modular lighting system for different outdoor scenarios.",
				Thumbnail:    "https://picsum.photos/400/303",
				Status:       model.ProjectStatusInProgress,
				Progress:     30,
				CurrentPhase: model.DesignPhaseConcept,
				StartDate:    "2023-12-01",
				DueDate:      "2024-04-10",
				Team:         []model.Member{memberAlex, memberDavid},
			},
		},
	}
}

// runSeed はデモ用のメンバー・プロジェクト・付箋・ファイルを投入する。
// 同じ ID のプロジェクトは削除してから作り直す（付箋・ファイル・フィードバックは CASCADE）。
func runSeed(ctx context.Context, pool *pgxpool.Pool) error {
	memberRepo := repository.NewPgMemberRepository(pool)
	projectRepo := repository.NewPgProjectRepository(pool)
	noteRepo := repository.NewPgNoteRepository(pool)
	fileRepo := repository.NewPgFileRepository(pool)

	for _, m := range seedMembers() {
		m := m
		if err := memberRepo.Upsert(ctx, &m, ""); err != nil {
			return fmt.Errorf("seed member %s: %w", m.ID, err)
		}
	}

	for _, sp := range seedProjects() {
		p := sp.Project
		if err := projectRepo.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("clear project %s: %w", p.ID, err)
		}
		if err := projectRepo.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed project %s: %w", p.ID, err)
		}
		if len(sp.Notes) > 0 {
			notes := make([]model.Note, len(sp.Notes))
			for i, n := range sp.Notes {
				n.ProjectID = p.ID
				notes[i] = n
			}
			if err := noteRepo.ReplaceForProject(ctx, p.ID, notes); err != nil {
				return fmt.Errorf("seed notes for %s: %w", p.ID, err)
			}
		}
		for _, f := range sp.Files {
			f.ProjectID = p.ID
			if err := fileRepo.Create(ctx, &f); err != nil {
				return fmt.Errorf("seed file %s: %w", f.ID, err)
			}
		}
		slog.Info("seeded project", "project_id", p.ID, "notes", len(sp.Notes), "files", len(sp.Files))
	}
	return nil
}
