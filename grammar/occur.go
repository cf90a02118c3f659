package grammar

import (
	"math"
	"strconv"
)

// Unbounded is the Occur.Max value meaning "no upper limit".
const Unbounded = math.MaxInt32

// Occur is an inclusive repetition bound.
type Occur struct {
	Min, Max int
}

var (
	Once     = Occur{1, 1}
	Optional = Occur{0, 1}
	Many     = Occur{0, Unbounded}
	Some     = Occur{1, Unbounded}
)

// Between returns {min, max} bound, negative max means Unbounded.
func Between(min, max int) Occur {
	if max < 0 {
		max = Unbounded
	}
	return Occur{min, max}
}

func AtLeast(min int) Occur {
	return Occur{min, Unbounded}
}

func (o Occur) Valid() bool {
	return o.Min >= 0 && o.Min <= o.Max
}

func (o Occur) IsUnbounded() bool {
	return o.Max >= Unbounded
}

func (o Occur) String() string {
	switch o {
	case Once:
		return ""
	case Optional:
		return "?"
	case Many:
		return "*"
	case Some:
		return "+"
	}

	if o.IsUnbounded() {
		return "{" + strconv.Itoa(o.Min) + ",}"
	}
	if o.Min == o.Max {
		return "{" + strconv.Itoa(o.Min) + "}"
	}
	return "{" + strconv.Itoa(o.Min) + "," + strconv.Itoa(o.Max) + "}"
}
