package viz

import (
	"strings"

	"github.com/san-kum/collatzrng/internal/rng"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates. The canvas holds
// (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Capacity is the number of sub-pixels.
func (c *Canvas) Capacity() int {
	return c.Width * 2 * c.Height * 4
}

// BitRaster lays bits out row by row, one sub-pixel per bit, lighting the
// ones. Bits beyond the capacity are dropped.
func (c *Canvas) BitRaster(bits rng.Bits) {
	c.Clear()
	cols := c.Width * 2
	if cols == 0 {
		return
	}
	for i, b := range bits {
		if i >= c.Capacity() {
			break
		}
		if b != 0 {
			c.Set(i%cols, i/cols)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// BitRaster renders bits on a fresh w by h canvas.
func BitRaster(bits rng.Bits, w, h int) string {
	c := NewCanvas(w, h)
	c.BitRaster(bits)
	return c.String()
}
