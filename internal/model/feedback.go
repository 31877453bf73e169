package model

import "time"

// Sentiment はフィードバック全体の感情トーン
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentMixed    Sentiment = "mixed"
)

// FeedbackAnalysis は AI によるクライアントフィードバックの分析結果
type FeedbackAnalysis struct {
	Summary             string    `json:"summary"`
	Sentiment           Sentiment `json:"sentiment"`
	KeyRequests         []string  `json:"key_requests"`
	Ambiguities         []string  `json:"ambiguities"`
	SuggestedQuestions  []string  `json:"suggested_questions"`
	NextStepsSuggestion string    `json:"next_steps_suggestion"`
}

// LogEntry はフィードバック記録。Analysis は分析に成功したときのみ入る。
type LogEntry struct {
	ID        string            `json:"id"`
	ProjectID string            `json:"project_id"`
	Date      time.Time         `json:"date"`
	Author    string            `json:"author"`
	RawText   string            `json:"raw_text"`
	Analysis  *FeedbackAnalysis `json:"analysis,omitempty"`
}
