package driver

import "fmt"

// checkCoverage verifies no two accepted chunks produced the same hour.
func checkCoverage(chunks []*chunk) error {
	seen := map[int]bool{}
	for _, ck := range chunks {
		for _, h := range ck.External {
			if seen[h.Hour] {
				return fmt.Errorf("%w: hour %d", ErrOverlappingCoverage, h.Hour)
			}
			seen[h.Hour] = true
		}
	}
	return nil
}

// fullCoverage reports whether the accepted chunks cover hours 0-23.
func fullCoverage(chunks []*chunk) bool {
	seen := map[int]bool{}
	for _, ck := range chunks {
		for _, h := range ck.External {
			seen[h.Hour] = true
		}
	}
	for hour := 0; hour < 24; hour++ {
		if !seen[hour] {
			return false
		}
	}
	return true
}
