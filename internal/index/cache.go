package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"loomii/internal/logging"
)

// EmbeddingCache persists document embeddings in SQLite, keyed by engine name
// and a content hash. A rebuild after restart only re-embeds documents whose
// text actually changed.
type EmbeddingCache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string) (*EmbeddingCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS embeddings (
		engine TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		vector TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (engine, content_hash)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize embedding cache schema: %w", err)
	}

	logging.IndexDebug("embedding cache open at %s", path)
	return &EmbeddingCache{db: db}, nil
}

// Get returns the cached vector for (engine, text), or nil when absent.
func (c *EmbeddingCache) Get(engine, text string) ([]float32, error) {
	var vectorJSON string
	err := c.db.QueryRow(
		"SELECT vector FROM embeddings WHERE engine = ? AND content_hash = ?",
		engine, contentHash(text),
	).Scan(&vectorJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vec []float32
	if err := json.Unmarshal([]byte(vectorJSON), &vec); err != nil {
		return nil, fmt.Errorf("corrupt cached vector: %w", err)
	}
	return vec, nil
}

// Put stores a vector for (engine, text), replacing any previous entry.
func (c *EmbeddingCache) Put(engine, text string, vec []float32) error {
	vectorJSON, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("failed to serialize vector: %w", err)
	}
	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO embeddings (engine, content_hash, vector) VALUES (?, ?, ?)",
		engine, contentHash(text), string(vectorJSON),
	)
	return err
}

// Close closes the underlying database.
func (c *EmbeddingCache) Close() error {
	return c.db.Close()
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
