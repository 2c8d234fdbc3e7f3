package impl

import "time"

// timeNow is swapped out in tests that assert on time-dependent behavior.
var timeNow = time.Now
