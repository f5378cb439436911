package cli

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hist-tools/getyield/internal/errors"
	"github.com/hist-tools/getyield/internal/logging"
)

const (
	// Version はアプリケーションのバージョン
	Version = "0.1.0"
	// AppName はアプリケーション名
	AppName = "getyield"
)

// 終了コード（スイート共通の規約に合わせた名前付き定数）
const (
	// ExitOK は正常終了（-h を含む）
	ExitOK = 0
	// ExitUsage は引数・フラグの使用法エラー
	ExitUsage = 1
	// ExitNoFile は入力ファイルが存在しないか通常ファイルでない
	ExitNoFile = 2
	// ExitNoHistogram は指定されたヒストグラムがコンテナに無い
	ExitNoHistogram = 3
)

// Invocation は1回の起動で確定する不変のパラメータを表す
type Invocation struct {
	// FilePath はヒストグラムコンテナのパス
	FilePath string
	// HistName は対象ヒストグラム名
	HistName string
	// BinSelector はビン指定（整数インデックスまたはラベル）
	BinSelector string
	// HasBin はビン指定が与えられたかどうか
	HasBin bool
	// IncludeOverflow はアンダー・オーバーフローを範囲に含めるか（-a）
	IncludeOverflow bool
	// PerBin はビンごとの出力を行うか（-b）
	PerBin bool
	// LabelMode はビン指定とキーをラベルとして扱うか（-l）
	LabelMode bool
}

// App はCLIアプリケーションを表す
type App struct {
	stdout io.Writer
	stderr io.Writer
}

// NewApp は新しいCLIアプリケーションを作成する
func NewApp() *App {
	return &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run は引数を解析してレポートを実行し、終了コードを返す
func (a *App) Run(args []string) int {
	logging.Setup(os.Stderr)

	inv, code, done := a.parseArgs(args)
	if done {
		return code
	}

	if err := a.report(inv); err != nil {
		a.printError(err)
		return errors.ExitCode(err)
	}
	return ExitOK
}

// parseArgs はコマンドライン引数を解析してInvocationを構築する
// doneがtrueの場合は解析段階で終了しており、codeをそのまま返す
func (a *App) parseArgs(args []string) (inv *Invocation, code int, done bool) {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		help            = fs.Bool("h", false, "print usage and exit")
		includeOverflow = fs.Bool("a", false, "include under/overflow bins")
		perBin          = fs.Bool("b", false, "per-bin yields instead of a single integral")
		labelMode       = fs.Bool("l", false, "treat bin selectors as axis labels")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			a.usage(a.stdout)
			return nil, ExitOK, true
		}
		fmt.Fprintln(a.stderr, err)
		a.usage(a.stderr)
		return nil, ExitUsage, true
	}

	if *help {
		a.usage(a.stdout)
		return nil, ExitOK, true
	}

	rest := fs.Args()
	if len(rest) < 2 || len(rest) > 3 {
		fmt.Fprintf(a.stderr, "%s: expected FILE HIST [BIN], got %d argument(s)\n", AppName, len(rest))
		a.usage(a.stderr)
		return nil, ExitUsage, true
	}

	inv = &Invocation{
		FilePath:        rest[0],
		HistName:        rest[1],
		IncludeOverflow: *includeOverflow,
		PerBin:          *perBin,
		LabelMode:       *labelMode,
	}
	if len(rest) == 3 {
		inv.BinSelector = rest[2]
		inv.HasBin = true
	}
	return inv, ExitOK, false
}

// printError はエラーと解決のヒントを標準エラー出力に表示する
func (a *App) printError(err error) {
	fmt.Fprintln(a.stderr, err.Error())

	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) {
		return
	}
	if len(cliErr.Suggestions) > 0 {
		fmt.Fprintln(a.stderr, "  available:")
		for _, s := range cliErr.Suggestions {
			fmt.Fprintf(a.stderr, "    %s\n", s)
		}
	}
	if cliErr.Type == errors.TypeUsage {
		a.usage(a.stderr)
	}
}

// usage は使用方法を表示する
func (a *App) usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: %s [-h] [-a] [-b] [-l] FILE HIST [BIN]

Report the yield of histogram HIST stored in container FILE.

  -h	print this help and exit
  -a	include the under/overflow bins in the range
  -b	report per-bin yields instead of a single integral
  -l	treat BIN and per-bin keys as axis labels, not indices
`, AppName)
}
