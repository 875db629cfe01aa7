package viz

import "fmt"

// IndexOutOfRangeError reports an attribute or anchor index outside the
// colour matrix. It is a programming or configuration error, never a data
// condition.
type IndexOutOfRangeError struct {
	Index int
	Len   int
	What  string // "attribute" or "anchor"
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Len)
}
