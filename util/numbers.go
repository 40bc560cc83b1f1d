package util

import (
	"fmt"
	"math"
)

const epsilon = 0.000001

func FloorDecimal(num float64, digits int) float64 {
	switch digits {
	case 0:
		return math.Floor(num)
	case 2:
		return math.Floor(num*100) / 100
	default:
		panic(fmt.Sprintf("FloorDecimal digits not supported: %d", digits))
	}
}

func NearlyEqual(a float64, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < epsilon
}

// FloorScore converts a chips x mult product to whole points. Values within epsilon of the next integer round up.
func FloorScore(score float64) int {
	rounded := math.Round(score)
	if NearlyEqual(score, rounded) {
		return int(rounded)
	}
	return int(FloorDecimal(score, 0))
}

func MinInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
