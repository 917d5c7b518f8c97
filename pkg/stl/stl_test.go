package stl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/philipparndt/probeview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tubeModel() *Model {
	m := NewModel("probe")
	m.AddMesh(geometry.FullTube(0.4, 2, 16), mgl32.Translate3D(0, -4, 0))
	return m
}

func TestAddMeshTransforms(t *testing.T) {
	m := tubeModel()
	assert.Equal(t, 16*4, m.TriangleCount())

	box := m.BoundingBox()
	assert.InDelta(t, -5, box.Min.Y(), 1e-5)
	assert.InDelta(t, -3, box.Max.Y(), 1e-5)
	assert.Greater(t, m.SurfaceArea(), float32(0))
}

func TestBinaryRoundTrip(t *testing.T) {
	m := tubeModel()

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, m))
	assert.Equal(t, 84+50*m.TriangleCount(), buf.Len())

	parsed, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "probe", parsed.Name)
	assert.Equal(t, m.Triangles, parsed.Triangles)
}

func TestASCIIRoundTrip(t *testing.T) {
	m := tubeModel()

	var buf bytes.Buffer
	require.NoError(t, WriteASCII(&buf, m))
	assert.True(t, strings.HasPrefix(buf.String(), "solid probe\n"))

	parsed, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "probe", parsed.Name)
	require.Equal(t, m.TriangleCount(), parsed.TriangleCount())
	assert.Equal(t, m.Triangles, parsed.Triangles)
}

func TestWriteAndParseFile(t *testing.T) {
	m := tubeModel()
	path := filepath.Join(t.TempDir(), "probe.stl")

	require.NoError(t, Write(path, m, false))
	parsed, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, m.TriangleCount(), parsed.TriangleCount())
}

func TestParseASCIIErrors(t *testing.T) {
	src := "solid bad\nfacet normal 0 0 1\nouter loop\nvertex 0 0 x\nendloop\nendfacet\nendsolid bad\n"
	_, err := Read(strings.NewReader(src))
	assert.ErrorContains(t, err, "line 4")
}

func TestParseASCIIIncompleteFacet(t *testing.T) {
	src := "solid short\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid short\n"
	_, err := Read(strings.NewReader(src))
	assert.ErrorContains(t, err, "facet has 2 vertices")
}

func TestParseTruncatedBinary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, tubeModel()))
	truncated := buf.Bytes()[:buf.Len()-10]

	_, err := Read(bytes.NewReader(truncated))
	assert.Error(t, err)
}
