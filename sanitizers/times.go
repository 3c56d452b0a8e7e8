package sanitizers

import (
	"math/rand"
	"time"

	"github.com/andersinno/database-sanitizer/dump"
)

const tenYearsAsSeconds = 10 * 365 * 24 * 3600

// RandomPastTimestamp replaces the value with a uniformly random instant
// somewhere in the last ten years, formatted as RFC 3339. Unlike the
// keyed-hash sanitizers it draws from the process's own random source
// rather than the session secret, matching the original's use of Python's
// global `random` module instead of its thread-local secret.
func RandomPastTimestamp(v dump.Value) dump.Value {
	if v.IsNull() {
		return v
	}
	millis := rand.Int63n(tenYearsAsSeconds * 1000)
	delta := time.Duration(millis) * time.Millisecond
	return dump.NewText(time.Now().Add(-delta).Format(time.RFC3339))
}
