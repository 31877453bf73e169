package service

import (
	"context"

	"github.com/designflow/backend/internal/model"
)

// 生成に失敗したときにそのままユーザーへ返す文言
const (
	SummaryEmptyText     = "Could not generate a summary."
	SummaryFailedText    = "Summary failed, please try again later."
	AssistantEmptyText   = "Sorry, I can't answer that right now."
	AssistantFailedText  = "The assistant is busy, please try again later."
	maxSummarySourceSize = 1 << 20
)

// AnalysisService は生成 AI を使う機能（フィードバック分析・ファイル要約・アシスタント）のインターフェース
type AnalysisService interface {
	// AnalyzeFeedback はクライアントの生フィードバックを分析し、成功した場合だけ記録を追加する
	AnalyzeFeedback(ctx context.Context, projectID, author, rawText string) (*model.LogEntry, error)
	ListFeedback(ctx context.Context, projectID string) ([]model.LogEntry, error)
	// SummarizeFile は失敗してもエラーにせず、定型文を返す
	SummarizeFile(ctx context.Context, projectID, fileID string) (string, error)
	// Ask は全プロジェクトのデータを文脈として質問に答える。生成の失敗は定型文で返す。
	Ask(ctx context.Context, query string) (string, error)
}
