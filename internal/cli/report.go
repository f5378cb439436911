package cli

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hist-tools/getyield/internal/errors"
	"github.com/hist-tools/getyield/internal/storage"
	"github.com/hist-tools/getyield/pkg/hist"
)

// reportMode はレポート形式の閉じた集合を表す
type reportMode int

const (
	// modeIntegral は範囲全体の積分と伝播誤差を1行で出力する
	modeIntegral reportMode = iota
	// modePerBin は範囲内のビンごとに1行出力する
	modePerBin
	// modeSingleByIndex は整数インデックスで指定された1ビンを出力する
	modeSingleByIndex
	// modeSingleByLabel はラベルで指定された1ビンを出力する
	modeSingleByLabel
)

// selectMode はフラグとビン指定の有無からレポート形式を1度だけ決める
func selectMode(inv *Invocation) reportMode {
	switch {
	case inv.HasBin && inv.LabelMode:
		return modeSingleByLabel
	case inv.HasBin:
		return modeSingleByIndex
	case inv.PerBin:
		return modePerBin
	default:
		return modeIntegral
	}
}

// report はコンテナを開き、選択された形式でレポートを出力する
func (a *App) report(inv *Invocation) error {
	info, err := os.Stat(inv.FilePath)
	if err != nil {
		return errors.Wrap(err, errors.TypeFile, ExitNoFile, "cannot open %q", inv.FilePath)
	}
	if !info.Mode().IsRegular() {
		return errors.New(errors.TypeFile, ExitNoFile, "not a regular file: %q", inv.FilePath)
	}

	st, err := storage.Open(inv.FilePath)
	if err != nil {
		return errors.Wrap(err, errors.TypeData, ExitNoHistogram, "cannot read container %q", inv.FilePath)
	}
	defer st.Close()

	h, err := st.Histogram(inv.HistName)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			missing := errors.New(errors.TypeData, ExitNoHistogram, "Missing histogram %q", inv.HistName)
			if keys, kerr := st.Keys(); kerr == nil && len(keys) > 0 {
				missing = missing.WithSuggestions(keys...)
			}
			return missing
		}
		return errors.Wrap(err, errors.TypeData, ExitNoHistogram, "cannot read histogram %q", inv.HistName)
	}
	slog.Debug("histogram resolved", "name", inv.HistName, "nbins", h.NBins())

	if inv.HasBin && inv.IncludeOverflow {
		fmt.Fprintln(a.stderr, `a specific bin was supplied, ignoring "-a"`)
	}

	first, last := h.Range(inv.IncludeOverflow)

	switch selectMode(inv) {
	case modeIntegral:
		a.reportIntegral(h, first, last)
	case modePerBin:
		a.reportPerBin(h, first, last, inv.LabelMode)
	case modeSingleByLabel:
		return a.reportSingleByLabel(h, inv.BinSelector)
	case modeSingleByIndex:
		return a.reportSingleByIndex(h, inv.BinSelector)
	}
	return nil
}

// reportIntegral は範囲の積分と伝播誤差 sqrt(Σ error^2) を出力する
func (a *App) reportIntegral(h *hist.H1, first, last int) {
	integral, err := h.IntegralAndError(first, last)
	fmt.Fprintf(a.stdout, "%f +- %f\n", integral, err)
}

// reportPerBin は範囲内の各ビンを昇順に1行ずつ出力する
// ラベルモードではキーを16文字以上に左詰めする
func (a *App) reportPerBin(h *hist.H1, first, last int, labelMode bool) {
	for b := first; b <= last; b++ {
		if labelMode {
			fmt.Fprintf(a.stdout, "%-16s: %f +- %f\n", h.BinLabel(b), h.BinContent(b), h.BinError(b))
		} else {
			fmt.Fprintf(a.stdout, "%d: %f +- %f\n", b, h.BinContent(b), h.BinError(b))
		}
	}
}

// reportSingleByLabel はラベルで解決した1ビンの内容と誤差を出力する
func (a *App) reportSingleByLabel(h *hist.H1, label string) error {
	idx, ok := h.FindBin(label)
	if !ok {
		e := errors.New(errors.TypeData, ExitNoHistogram,
			"unknown bin label %q in histogram %q", label, h.Name)
		if len(h.Labels) > 0 {
			e = e.WithSuggestions(h.Labels...)
		}
		return e
	}
	fmt.Fprintf(a.stdout, "%f +- %f\n", h.BinContent(idx), h.BinError(idx))
	return nil
}

// reportSingleByIndex は整数インデックスの1ビンを出力する
// 範囲チェックは行わず、範囲外はハンドル契約（0を返す）に従う
func (a *App) reportSingleByIndex(h *hist.H1, selector string) error {
	idx, err := strconv.Atoi(selector)
	if err != nil {
		return errors.New(errors.TypeUsage, ExitUsage, "invalid bin index %q", selector)
	}
	fmt.Fprintf(a.stdout, "%f +- %f\n", h.BinContent(idx), h.BinError(idx))
	return nil
}
