// Package fuzzy provides approximate string matching for style-name
// classification. The scorer is a plain function type so callers can swap
// in a deterministic stub for tests.
package fuzzy

// Scorer returns a similarity in [0,1] between two strings.
type Scorer func(a, b string) float64

// Ratio computes 2*M/T where M is the number of matched characters found
// by repeatedly taking the longest common substring, and T is the combined
// length of both inputs. Identical strings score 1, disjoint strings 0.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	matched := matchCount(a, b)
	return 2 * float64(matched) / float64(total)
}

// Match reports whether any pattern scores at least cutoff against name.
func Match(score Scorer, name string, patterns []string, cutoff float64) bool {
	for _, p := range patterns {
		if score(name, p) >= cutoff {
			return true
		}
	}
	return false
}

func matchCount(a, b string) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	n := size
	n += matchCount(a[:ai], b[:bi])
	n += matchCount(a[ai+size:], b[bi+size:])
	return n
}

// longestMatch finds the longest common substring of a and b, returning its
// start offset in each plus its length.
func longestMatch(a, b string) (int, int, int) {
	bestA, bestB, bestSize := 0, 0, 0
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] holds the common-suffix length ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestSize {
					bestSize = cur[j]
					bestA = i - bestSize
					bestB = j - bestSize
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestA, bestB, bestSize
}
