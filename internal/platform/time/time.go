// Package time contains time related helpers
package time

import "time"

// TruncMillis drops sub-millisecond precision from t.
// Activity cutoff comparisons happen at millisecond resolution
func TruncMillis(t time.Time) time.Time {
	return t.Truncate(time.Millisecond)
}
