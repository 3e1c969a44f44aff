package index

import "math"

// Dot accumulates in float64 and ignores trailing elements of the longer vector.
func Dot(a, b []float32) float32 {
	var dot float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot)
}

func norm(v []float32) float64 {
	var n float64
	for _, x := range v {
		n += float64(x) * float64(x)
	}
	return math.Sqrt(n)
}

// Normalize returns v scaled to unit length. A zero vector is returned
// unchanged (its norm is treated as 1).
func Normalize(v []float32) []float32 {
	n := norm(v)
	if n == 0 {
		n = 1
	}
	return scale(v, n)
}

// NormalizeEpsilon divides by norm+1e-9, used for fresh query vectors.
func NormalizeEpsilon(v []float32) []float32 {
	return scale(v, norm(v)+1e-9)
}

func scale(v []float32, n float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / n)
	}
	return out
}
