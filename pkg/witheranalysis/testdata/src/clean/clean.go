package clean

//wither:copy
type Point struct {
	X, Y int
}

//wither:combinations private
type pair struct {
	left, right string
}

// Unmarked is ignored.
type Unmarked int
