package hist

import (
	"fmt"
	"math"
)

// Bin は1つのビンの積算内容と統計誤差を表す
type Bin struct {
	// Content はビンの積算内容
	Content float64 `json:"content"`
	// Error はビン内容の統計誤差
	Error float64 `json:"error"`
}

// H1 は名前付きの1次元ヒストグラムを表す
// Bins は N+2 要素を持ち、インデックス0がアンダーフロー、
// N+1がオーバーフローの番兵ビンになる
type H1 struct {
	// Name はコンテナ内でのヒストグラム名
	Name string `json:"name"`
	// Title は表示用タイトル（省略可）
	Title string `json:"title,omitempty"`
	// Bins はアンダーフロー・オーバーフローを含む全ビン
	Bins []Bin `json:"bins"`
	// Labels は通常ビンの軸ラベル（省略可）
	// ビンbのラベルは Labels[b-1] に格納される
	Labels []string `json:"labels,omitempty"`
}

// New は通常ビン数nbinsの空のヒストグラムを作成する
func New(name string, nbins int) *H1 {
	return &H1{
		Name: name,
		Bins: make([]Bin, nbins+2),
	}
}

// NBins は通常ビンの数Nを返す
func (h *H1) NBins() int {
	if len(h.Bins) < 2 {
		return 0
	}
	return len(h.Bins) - 2
}

// BinContent はビンiの内容を返す
// 範囲外アクセスは0を返す（ハンドル契約）
func (h *H1) BinContent(i int) float64 {
	if i < 0 || i >= len(h.Bins) {
		return 0
	}
	return h.Bins[i].Content
}

// BinError はビンiの統計誤差を返す
// 範囲外アクセスは0を返す（ハンドル契約）
func (h *H1) BinError(i int) float64 {
	if i < 0 || i >= len(h.Bins) {
		return 0
	}
	return h.Bins[i].Error
}

// BinLabel はビンiの軸ラベルを返す
// ラベル未設定、または番兵ビン・範囲外の場合は空文字列を返す
func (h *H1) BinLabel(i int) string {
	if i < 1 || i > len(h.Labels) {
		return ""
	}
	return h.Labels[i-1]
}

// FindBin はラベルに対応するビン番号を探す
func (h *H1) FindBin(label string) (int, bool) {
	for i, l := range h.Labels {
		if l == label {
			return i + 1, true
		}
	}
	return 0, false
}

// SetBin はビンiの内容と誤差を設定する（フィクスチャ生成用）
func (h *H1) SetBin(i int, content, err float64) {
	if i < 0 || i >= len(h.Bins) {
		return
	}
	h.Bins[i] = Bin{Content: content, Error: err}
}

// Range はレポート対象のビン範囲 [first, last] を返す
// 通常は [1, N]、includeOverflow 指定時は [0, N+1]
func (h *H1) Range(includeOverflow bool) (first, last int) {
	if includeOverflow {
		return 0, h.NBins() + 1
	}
	return 1, h.NBins()
}

// IntegralAndError は範囲 [first, last] のビン内容の合計と、
// 独立測定の和としての伝播誤差 sqrt(Σ error_i^2) を返す
func (h *H1) IntegralAndError(first, last int) (integral, err float64) {
	var sumw2 float64
	for b := first; b <= last; b++ {
		integral += h.BinContent(b)
		e := h.BinError(b)
		sumw2 += e * e
	}
	return integral, math.Sqrt(sumw2)
}

// Validate はヒストグラムの構造的な整合性をチェックする
func (h *H1) Validate() error {
	if len(h.Bins) < 2 {
		return fmt.Errorf("histogram %q has %d bins, need at least the under/overflow pair", h.Name, len(h.Bins))
	}
	if len(h.Labels) != 0 && len(h.Labels) != h.NBins() {
		return fmt.Errorf("histogram %q has %d labels for %d bins", h.Name, len(h.Labels), h.NBins())
	}
	return nil
}
