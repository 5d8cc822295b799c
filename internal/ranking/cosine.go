package ranking

import "math"

// CosineSimilarity returns the cosine of the angle between a and b.
// It is 0 when either vector has zero magnitude. Vectors of different
// length are compared over the shorter prefix.
func CosineSimilarity(a, b []float64) float64 {
	n := min(len(a), len(b))

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// BinaryVector maps universe onto {0,1}: position i is 1 when universe[i]
// is in set.
func BinaryVector(universe []string, set map[string]struct{}) []float64 {
	vec := make([]float64, len(universe))
	for i, item := range universe {
		if _, ok := set[item]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// unionOrdered returns the distinct items of a followed by the items of b
// not already present.
func unionOrdered(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	universe := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		universe = append(universe, s)
	}
	for _, s := range b {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		universe = append(universe, s)
	}
	return universe
}
