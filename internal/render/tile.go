package render

// tile is a rectangular pixel block assigned to a single worker (spec.md
// §4.7's glossary entry for "Tile").
type tile struct {
	x0, y0, x1, y1 int // half-open [x0,x1) x [y0,y1)
	id             int
}

// tilesFor partitions an image into fixed-size tiles in row-major order,
// matching the teacher's channel-based worker pool (pkg/renderer's
// WorkerPool/TileRenderer): tile IDs are assigned up front so results can
// be reassembled deterministically regardless of completion order.
func tilesFor(width, height, tileSize int) []tile {
	var tiles []tile
	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			x1 := min(x+tileSize, width)
			y1 := min(y+tileSize, height)
			tiles = append(tiles, tile{x0: x, y0: y, x1: x1, y1: y1, id: id})
			id++
		}
	}
	return tiles
}
