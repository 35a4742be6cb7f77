package pdf

// photosPerSlide caps one photo slide; longer photo lists paginate.
const photosPerSlide = 4

const photoGap = 8.0

type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Placement assigns the photo at Index to a sub-rectangle of the slide body.
type Placement struct {
	Index int
	Box   Rect
}

// PhotoGrid computes the deterministic tiling for n photos inside box:
// 1 fills the box, 2 split into equal columns, 3 get one large left column
// plus two stacked right cells, 4 form a 2x2 grid. Counts above
// photosPerSlide are the caller's problem; the grid caps at 4 cells.
func PhotoGrid(n int, box Rect) []Placement {
	if n <= 0 {
		return nil
	}
	if n > photosPerSlide {
		n = photosPerSlide
	}

	switch n {
	case 1:
		return []Placement{{Index: 0, Box: box}}
	case 2:
		colW := (box.W - photoGap) / 2
		return []Placement{
			{Index: 0, Box: Rect{X: box.X, Y: box.Y, W: colW, H: box.H}},
			{Index: 1, Box: Rect{X: box.X + colW + photoGap, Y: box.Y, W: colW, H: box.H}},
		}
	case 3:
		leftW := box.W * 0.6
		rightW := box.W - leftW - photoGap
		rightH := (box.H - photoGap) / 2
		rightX := box.X + leftW + photoGap
		return []Placement{
			{Index: 0, Box: Rect{X: box.X, Y: box.Y, W: leftW, H: box.H}},
			{Index: 1, Box: Rect{X: rightX, Y: box.Y, W: rightW, H: rightH}},
			{Index: 2, Box: Rect{X: rightX, Y: box.Y + rightH + photoGap, W: rightW, H: rightH}},
		}
	default:
		cellW := (box.W - photoGap) / 2
		cellH := (box.H - photoGap) / 2
		placements := make([]Placement, 0, 4)
		for i := 0; i < 4; i++ {
			col := float64(i % 2)
			row := float64(i / 2)
			placements = append(placements, Placement{
				Index: i,
				Box: Rect{
					X: box.X + col*(cellW+photoGap),
					Y: box.Y + row*(cellH+photoGap),
					W: cellW,
					H: cellH,
				},
			})
		}
		return placements
	}
}

// photoBatches splits photos into slide-sized groups of at most
// photosPerSlide, preserving order.
func photoBatches(photos [][]byte) [][][]byte {
	if len(photos) == 0 {
		return nil
	}
	batches := make([][][]byte, 0, (len(photos)+photosPerSlide-1)/photosPerSlide)
	for start := 0; start < len(photos); start += photosPerSlide {
		end := start + photosPerSlide
		if end > len(photos) {
			end = len(photos)
		}
		batches = append(batches, photos[start:end])
	}
	return batches
}
