package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// References follow VS{YY}{MM}{SEQ:04d} and increase monotonically inside a
// tenant's calendar month.

const referencePrefix = "VS"

// ReferencePrefix builds the month prefix for a point in time, e.g. VS2608.
func ReferencePrefix(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("%s%02d%02d", referencePrefix, now.Year()%100, int(now.Month()))
}

// NextReference increments the trailing sequence of the greatest existing
// reference for the prefix. An empty or malformed last reference starts the
// month at 0001.
func NextReference(prefix, last string) string {
	seq := 1
	if strings.HasPrefix(last, prefix) && len(last) == len(prefix)+4 {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}
