package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	row := Row{Instance: "inst1", N: 4, M: 4, P: 2, FinalUB: 2}
	assert.NoError(t, Append(dir, "results.csv", row))
	assert.NoError(t, Append(dir, "results.csv", row))

	data, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	assert.NoError(t, err)
	lines := splitLines(string(data))
	assert.Equal(t, 3, len(lines)) // header + 2 rows
	assert.Contains(t, lines[0], "instance")
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func TestBKSCacheRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bks.txt")

	c, err := LoadBKSCache(path)
	assert.NoError(t, err)
	assert.NoError(t, c.Put("inst1", [][]int{{0, 2}, {1, 3}}))

	reloaded, err := LoadBKSCache(path)
	assert.NoError(t, err)
	sets, ok := reloaded.Get("inst1")
	assert.True(t, ok)
	assert.ElementsMatch(t, [][]int{{0, 2}, {1, 3}}, sets)
}

func TestBKSCachePutTwiceWritesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bks.txt")
	c, _ := LoadBKSCache(path)
	assert.NoError(t, c.Put("inst1", [][]int{{0}}))
	assert.NoError(t, c.Put("inst1", [][]int{{0, 1}}))

	_, err := os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestBKSCacheMissingInstanceReportsNegativeOne(t *testing.T) {
	dir := t.TempDir()
	c, _ := LoadBKSCache(filepath.Join(dir, "bks.txt"))
	assert.Equal(t, -1, c.NumColours("nope"))
}
