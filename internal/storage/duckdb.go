package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/hist-tools/getyield/pkg/hist"
)

// DuckDBStore はDuckDBコンテナのバックエンド
// スキーマ:
//
//	histograms(name VARCHAR PRIMARY KEY, title VARCHAR, nbins INTEGER)
//	bins(hist VARCHAR, idx INTEGER, label VARCHAR, content DOUBLE, err DOUBLE)
type DuckDBStore struct {
	db *sql.DB
}

// OpenDuckDB はDuckDBコンテナを読み取り専用で開く
func OpenDuckDB(path string) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", path+"?access_mode=read_only")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB container: %w", err)
	}
	slog.Debug("DuckDB container opened", "path", path)
	return &DuckDBStore{db: db}, nil
}

// Histogram は名前でヒストグラムを取得する
func (s *DuckDBStore) Histogram(name string) (*hist.H1, error) {
	var (
		title string
		nbins int
	)
	row := s.db.QueryRow(`SELECT title, nbins FROM histograms WHERE name = ?`, name)
	if err := row.Scan(&title, &nbins); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query histogram %q: %w", name, err)
	}

	h := hist.New(name, nbins)
	h.Title = title

	rows, err := s.db.Query(
		`SELECT idx, label, content, err FROM bins WHERE hist = ? ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query bins of %q: %w", name, err)
	}
	defer rows.Close()

	var labels []string
	labeled := false
	for rows.Next() {
		var idx int
		var label string
		var content, binErr float64
		if err := rows.Scan(&idx, &label, &content, &binErr); err != nil {
			return nil, fmt.Errorf("failed to scan bin of %q: %w", name, err)
		}
		h.SetBin(idx, content, binErr)
		if idx >= 1 && idx <= nbins {
			for len(labels) < idx {
				labels = append(labels, "")
			}
			labels[idx-1] = label
			if label != "" {
				labeled = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bins of %q: %w", name, err)
	}

	if labeled {
		for len(labels) < nbins {
			labels = append(labels, "")
		}
		h.Labels = labels
	}

	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("invalid container: %w", err)
	}
	return h, nil
}

// Keys はコンテナ内の全ヒストグラム名をソート済みで返す
func (s *DuckDBStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM histograms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list histograms: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan histogram name: %w", err)
		}
		keys = append(keys, name)
	}
	return keys, rows.Err()
}

// Close はデータベース接続を閉じる
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

// WriteDuckDB はヒストグラム群をDuckDBコンテナとして書き出す
// CLIからは使わない。フィクスチャとテストのためのライター
func WriteDuckDB(path string, hists map[string]*hist.H1) error {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to create DuckDB container: %w", err)
	}
	defer db.Close()

	schema := `
	CREATE TABLE IF NOT EXISTS histograms (
		name  VARCHAR PRIMARY KEY,
		title VARCHAR,
		nbins INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS bins (
		hist    VARCHAR NOT NULL,
		idx     INTEGER NOT NULL,
		label   VARCHAR,
		content DOUBLE NOT NULL,
		err     DOUBLE NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	for _, name := range sortedKeys(hists) {
		h := hists[name]
		if err := h.Validate(); err != nil {
			return err
		}
		if _, err := db.Exec(
			`INSERT INTO histograms (name, title, nbins) VALUES (?, ?, ?)`,
			name, h.Title, h.NBins()); err != nil {
			return fmt.Errorf("failed to insert histogram %q: %w", name, err)
		}
		for i := range h.Bins {
			if _, err := db.Exec(
				`INSERT INTO bins (hist, idx, label, content, err) VALUES (?, ?, ?, ?, ?)`,
				name, i, h.BinLabel(i), h.BinContent(i), h.BinError(i)); err != nil {
				return fmt.Errorf("failed to insert bins of %q: %w", name, err)
			}
		}
	}
	return nil
}
