package attendance

import "time"

// Clock supplies the current instant when a check-in or check-out time is not
// explicitly given.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
