package shapes

import "image/color"

// Rect is a plain rectangle.
//
//wither:copy
type Rect struct {
	W, H  int
	Label string
	Fill  color.RGBA
}

//wither:combinations
type Pt struct {
	X, Y int
}

//wither:copy
type Empty struct{}

//wither:combinations
type Wide struct {
	A, B, C, D, E, F, G, H, I int
}
