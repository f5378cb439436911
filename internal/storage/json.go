package storage

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/hist-tools/getyield/pkg/hist"
)

// container はJSON・gobコンテナのトップレベル構造
type container struct {
	Histograms map[string]*hist.H1 `json:"histograms"`
}

// JSONStore はJSONコンテナのバックエンド
type JSONStore struct {
	memStore
}

// OpenJSON はJSONコンテナを読み込む
func OpenJSON(path string) (*JSONStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}

	var c container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal container: %w", err)
	}

	if err := normalize(&c); err != nil {
		return nil, err
	}
	return &JSONStore{memStore{hists: c.Histograms}}, nil
}

// WriteJSON はヒストグラム群をJSONコンテナとして書き出す
// CLIからは使わない。フィクスチャとテストのためのライター
func WriteJSON(path string, hists map[string]*hist.H1) error {
	data, err := json.MarshalIndent(container{Histograms: hists}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal container: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write container: %w", err)
	}
	return nil
}

// normalize は読み込んだコンテナを検証し、キーと名前を揃える
func normalize(c *container) error {
	if c.Histograms == nil {
		c.Histograms = map[string]*hist.H1{}
	}
	for name, h := range c.Histograms {
		if h == nil {
			return fmt.Errorf("container entry %q is empty", name)
		}
		if h.Name == "" {
			h.Name = name
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("invalid container: %w", err)
		}
	}
	return nil
}
