package service

import "errors"

var (
	// ErrInvalidInput は入力値の検証に失敗した場合のエラー
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoteNotFound はホワイトボード上に付箋が存在しない場合のエラー
	ErrNoteNotFound = errors.New("note not found")
	// ErrFileNotFound はプロジェクトにファイルが存在しない場合のエラー
	ErrFileNotFound = errors.New("file not found")
	// ErrAnalysisFailed はフィードバック分析の生成に失敗した場合のエラー
	ErrAnalysisFailed = errors.New("analysis failed")
)
