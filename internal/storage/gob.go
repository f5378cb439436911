package storage

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/hist-tools/getyield/pkg/hist"
)

// GobStore はネイティブのgobバイナリコンテナのバックエンド
type GobStore struct {
	memStore
}

// OpenGob はgobコンテナを読み込む
func OpenGob(path string) (*GobStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read container: %w", err)
	}
	defer f.Close()

	var c container
	if err := gob.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode container: %w", err)
	}

	if err := normalize(&c); err != nil {
		return nil, err
	}
	return &GobStore{memStore{hists: c.Histograms}}, nil
}

// WriteGob はヒストグラム群をgobコンテナとして書き出す
func WriteGob(path string, hists map[string]*hist.H1) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(container{Histograms: hists}); err != nil {
		return fmt.Errorf("failed to encode container: %w", err)
	}
	return nil
}
