package errors

import (
	stderrors "errors"
	"fmt"
)

// Type はCLIエラーの分類を表す
type Type int

const (
	// TypeUsage は引数・フラグの使用法エラー
	TypeUsage Type = iota
	// TypeFile は入力ファイル関連のエラー
	TypeFile
	// TypeData はコンテナ内容関連のエラー
	TypeData
)

// CLIError は終了コードと解決のヒントを運ぶエラー
type CLIError struct {
	Type        Type
	Code        int
	Message     string
	Cause       error
	Suggestions []string
}

// Error は error インターフェースを実装する
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap は内部エラーを返す
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// New は新しいCLIエラーを作成する
func New(t Type, code int, format string, args ...interface{}) *CLIError {
	return &CLIError{
		Type:    t,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap は既存のエラーをCLIエラーでラップする
func Wrap(cause error, t Type, code int, format string, args ...interface{}) *CLIError {
	e := New(t, code, format, args...)
	e.Cause = cause
	return e
}

// WithSuggestions は解決のヒントを追加する
func (e *CLIError) WithSuggestions(suggestions ...string) *CLIError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// ExitCode はエラーから終了コードを取り出す
// CLIエラーでない場合は1を返す
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr.Code
	}
	return 1
}
