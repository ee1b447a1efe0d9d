package diagram

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderImageLinear(t *testing.T) {
	png, err := RenderImage(context.Background(), mustBuild(t, "1. Read a\n2. Print a"), ImagePNG)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// Verify PNG magic bytes: 0x89 P N G.
	assert.True(t, len(png) > 8, "PNG should be larger than header")
	assert.Equal(t, byte(0x89), png[0])
	assert.Equal(t, byte('P'), png[1])
	assert.Equal(t, byte('N'), png[2])
	assert.Equal(t, byte('G'), png[3])
}

func TestRenderImageDecision(t *testing.T) {
	png, err := RenderImage(context.Background(), mustBuild(t, evenOdd), "")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, byte(0x89), png[0])
}

func TestRenderImageSVG(t *testing.T) {
	svg, err := RenderImage(context.Background(), MinimalGraph(), ImageSVG)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(svg, []byte("<svg")))
	assert.True(t, bytes.Contains(svg, []byte("Decision Point")))
}

func TestRenderImageUnsupportedFormat(t *testing.T) {
	_, err := RenderImage(context.Background(), MinimalGraph(), "gif")
	assert.Error(t, err)
}

func TestRenderImageUnknownEdgeTarget(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "A", Label: "Start", Shape: ShapeStart}},
		Edges: []Edge{{From: "A", To: "B"}},
	}
	_, err := RenderImage(context.Background(), g, ImagePNG)
	assert.Error(t, err)
}
