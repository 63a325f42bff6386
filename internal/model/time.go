package model

import (
	"strconv"
	"time"
)

const archiveTimeLayout = DeadlineDateLayout + " 15:04"

// ArchiveTime renders archive timestamps in the site's date style, in the
// server's local zone. The zero time renders as null.
type ArchiveTime time.Time

func (t ArchiveTime) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(tt.Local().Format(archiveTimeLayout))), nil
}
