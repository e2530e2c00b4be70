package shapes

//wither:copy
type Level int // want `copy methods can only be generated for a struct type`

//wither:copy
type Shape interface{ Area() float64 } // want `copy methods can only be generated for a struct type`

//wither:combinations
type Grid struct { // want `9 fields would produce 511 combinations`
	A, B, C, D, E, F, G, H, I int
}

//wither:copy public
type Rect struct {
	W, H int
}
