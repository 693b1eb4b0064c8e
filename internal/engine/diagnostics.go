package engine

import (
	"log"
	"sync"
)

// warnOnce guards the first per-record parse-error diagnostic so a
// noisy input logs to stderr exactly once and the record is skipped,
// not once per malformed line.
var warnOnce sync.Once

func warnMalformed() {
	warnOnce.Do(func() {
		log.Print("zson: skipping malformed record(s); further occurrences will not be logged individually")
	})
}
