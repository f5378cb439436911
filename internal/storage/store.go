package storage

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hist-tools/getyield/pkg/hist"
)

// ErrNotFound は要求されたヒストグラムがコンテナに無いことを表す
var ErrNotFound = errors.New("histogram not found")

// Store はヒストグラムコンテナへの読み取りアクセスを提供する
type Store interface {
	// Histogram は名前でヒストグラムを取得する
	// 見つからない場合は ErrNotFound をラップしたエラーを返す
	Histogram(name string) (*hist.H1, error)
	// Keys はコンテナ内の全ヒストグラム名をソート済みで返す
	// 名前は "dir/sub/name" のような入れ子のパスを取り得る
	Keys() ([]string, error)
	// Close はコンテナを解放する
	Close() error
}

// Open はファイル拡張子からバックエンドを選択してコンテナを開く
//
//	.json          goccy/go-json によるJSONコンテナ
//	.ejson         AES-GCMで暗号化されたJSONコンテナ
//	.duckdb, .ddb  DuckDBデータベース
//	それ以外        gobバイナリコンテナ（ネイティブ形式）
func Open(path string) (Store, error) {
	ext := strings.ToLower(filepath.Ext(path))
	slog.Debug("opening container", "path", path, "ext", ext)

	switch ext {
	case ".json":
		return OpenJSON(path)
	case ".ejson":
		return OpenEncrypted(path)
	case ".duckdb", ".ddb":
		return OpenDuckDB(path)
	default:
		return OpenGob(path)
	}
}

// memStore は全体をメモリに読み込むバックエンドの共通実装
type memStore struct {
	hists map[string]*hist.H1
}

func (s *memStore) Histogram(name string) (*hist.H1, error) {
	h, ok := s.hists[name]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

func (s *memStore) Keys() ([]string, error) {
	return sortedKeys(s.hists), nil
}

func (s *memStore) Close() error {
	return nil
}

func sortedKeys(hists map[string]*hist.H1) []string {
	keys := make([]string, 0, len(hists))
	for name := range hists {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
