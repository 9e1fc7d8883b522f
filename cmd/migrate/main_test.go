package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- header
CREATE TABLE a (
    id STRING(36) NOT NULL,
) PRIMARY KEY (id);

-- index
CREATE INDEX a_by_id ON a(id DESC);
`
	stmts := splitDDLStatements(content)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE a")
	assert.Equal(t, "CREATE INDEX a_by_id ON a(id DESC)", stmts[1])
}

func TestSchemaMigration(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_pricing_schema.sql"))
	require.NoError(t, err)

	stmts := splitDDLStatements(string(raw))
	require.Len(t, stmts, 4)
	assert.Contains(t, stmts[0], "CREATE TABLE pricing (")
	assert.Contains(t, stmts[1], "CREATE TABLE pricing_detail (")
	assert.Contains(t, stmts[2], "allow_commit_timestamp=true")
	assert.Contains(t, stmts[3], "pricing_final_by_timestamp")
}

func TestPending(t *testing.T) {
	log = logger.NewNop()

	files := []string{"migrations/001_pricing_schema.sql", "migrations/002_next.sql"}
	applied := map[string]time.Time{"001_pricing_schema.sql": time.Now()}

	assert.Equal(t, []string{"migrations/002_next.sql"}, pending(files, applied))
	assert.Equal(t, files, pending(files, nil))
}
