package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompleteBipartiteAcrossClusters(t *testing.T) {
	text := "4\n4\n2\n0 2\n0 3\n1 2\n1 3\n0 1\n2 3\n"
	inst, err := Parse(strings.NewReader(text))
	assert.NoError(t, err)
	assert.Equal(t, 4, inst.N)
	assert.Equal(t, 4, inst.M)
	assert.Equal(t, 2, inst.P)
	assert.True(t, inst.G.Adjacent(0, 2))
	assert.True(t, inst.G.Adjacent(0, 1)) // cluster mates: graph.New makes every cluster a clique
}

func TestParseRejectsOverlappingClusters(t *testing.T) {
	text := "2\n0\n2\n0\n0 1\n"
	_, err := Parse(strings.NewReader(text))
	assert.Error(t, err)
}

func TestParseRejectsUncoveredVertex(t *testing.T) {
	text := "2\n0\n1\n0\n"
	_, err := Parse(strings.NewReader(text))
	assert.Error(t, err)
}

func TestParseRejectsOutOfRangeVertex(t *testing.T) {
	text := "2\n1\n1\n0 5\n0 1\n"
	_, err := Parse(strings.NewReader(text))
	assert.Error(t, err)
}
