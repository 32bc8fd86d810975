// Package layout computes the collage geometry. Everything here is a pure
// function of the capacity; plans are cheap and are recomputed per export.
package layout

import "image"

const (
	Columns      = 5
	CellWidth    = 450
	CellHeight   = 600
	BorderSize   = 20
	FooterHeight = 120
)

// Plan is the grid geometry for one collage.
type Plan struct {
	Columns      int
	Rows         int
	CellWidth    int
	CellHeight   int
	BorderSize   int
	FooterHeight int
	CanvasWidth  int
	CanvasHeight int
}

// RowsFor returns the row count of a mode. Rows are fixed per mode rather
// than derived from the capacity: 5 → 1 row, anything else → 3 rows.
func RowsFor(capacity int) int {
	if capacity == 5 {
		return 1
	}
	return 3
}

// ForCapacity returns the plan for a mode's capacity.
func ForCapacity(capacity int) Plan {
	rows := RowsFor(capacity)
	return Plan{
		Columns:      Columns,
		Rows:         rows,
		CellWidth:    CellWidth,
		CellHeight:   CellHeight,
		BorderSize:   BorderSize,
		FooterHeight: FooterHeight,
		CanvasWidth:  Columns*CellWidth + 2*BorderSize,
		CanvasHeight: rows*CellHeight + 2*BorderSize + FooterHeight,
	}
}

// Bounds is the full canvas rectangle.
func (p Plan) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.CanvasWidth, p.CanvasHeight)
}

// GridPos returns the grid column and row of the k-th item (0-indexed,
// insertion order). Placement is row-major.
func (p Plan) GridPos(k int) (col, row int) {
	return k % p.Columns, k / p.Columns
}

// Cell returns the pixel rectangle of the k-th item.
func (p Plan) Cell(k int) image.Rectangle {
	col, row := p.GridPos(k)
	x := col*p.CellWidth + p.BorderSize
	y := row*p.CellHeight + p.BorderSize
	return image.Rect(x, y, x+p.CellWidth, y+p.CellHeight)
}

// GridRect is the interior area holding the photos.
func (p Plan) GridRect() image.Rectangle {
	b := p.BorderSize
	return image.Rect(b, b, b+p.Columns*p.CellWidth, b+p.Rows*p.CellHeight)
}

// FooterRect is the text band below the grid, inside the border.
func (p Plan) FooterRect() image.Rectangle {
	b := p.BorderSize
	top := p.CanvasHeight - p.FooterHeight - b
	return image.Rect(b, top, b+p.Columns*p.CellWidth, top+p.FooterHeight)
}

// FooterCenterY is the vertical center line of the footer band.
func (p Plan) FooterCenterY() float64 {
	return float64(p.CanvasHeight-p.BorderSize) - float64(p.FooterHeight)/2
}
