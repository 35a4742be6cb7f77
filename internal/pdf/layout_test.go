package pdf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectsOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func rectInside(inner, outer Rect) bool {
	const eps = 0.001
	return inner.X >= outer.X-eps &&
		inner.Y >= outer.Y-eps &&
		inner.X+inner.W <= outer.X+outer.W+eps &&
		inner.Y+inner.H <= outer.Y+outer.H+eps
}

func TestPhotoGrid_CellCountsAndBounds(t *testing.T) {
	box := Rect{X: 48, Y: 88, W: 864, H: 404}

	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			placements := PhotoGrid(n, box)
			require.Len(t, placements, n)

			for i, p := range placements {
				assert.Equal(t, i, p.Index)
				assert.True(t, rectInside(p.Box, box), "placement %d out of bounds: %+v", i, p.Box)
				assert.Greater(t, p.Box.W, 0.0)
				assert.Greater(t, p.Box.H, 0.0)
			}
			for i := 0; i < len(placements); i++ {
				for j := i + 1; j < len(placements); j++ {
					assert.False(t, rectsOverlap(placements[i].Box, placements[j].Box),
						"placements %d and %d overlap", i, j)
				}
			}
		})
	}
}

func TestPhotoGrid_SingleFillsBox(t *testing.T) {
	box := Rect{X: 10, Y: 20, W: 300, H: 200}
	placements := PhotoGrid(1, box)
	require.Len(t, placements, 1)
	assert.Equal(t, box, placements[0].Box)
}

func TestPhotoGrid_ThreeHasLargeLeftColumn(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 1000, H: 500}
	placements := PhotoGrid(3, box)
	require.Len(t, placements, 3)

	assert.Equal(t, 600.0, placements[0].Box.W)
	assert.Equal(t, 500.0, placements[0].Box.H)
	assert.Equal(t, placements[1].Box.W, placements[2].Box.W)
	assert.Equal(t, placements[1].Box.H, placements[2].Box.H)
	assert.Greater(t, placements[2].Box.Y, placements[1].Box.Y)
}

func TestPhotoGrid_CapsAtFour(t *testing.T) {
	box := Rect{X: 0, Y: 0, W: 100, H: 100}
	assert.Len(t, PhotoGrid(9, box), 4)
}

func TestPhotoGrid_Empty(t *testing.T) {
	assert.Nil(t, PhotoGrid(0, Rect{W: 100, H: 100}))
}

func TestPhotoBatches_FiveSplitsIntoFourPlusOne(t *testing.T) {
	photos := make([][]byte, 5)
	for i := range photos {
		photos[i] = []byte{byte(i)}
	}

	batches := photoBatches(photos)

	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 1)
	assert.Equal(t, []byte{4}, batches[1][0])
}

func TestPhotoBatches_Empty(t *testing.T) {
	assert.Nil(t, photoBatches(nil))
}
