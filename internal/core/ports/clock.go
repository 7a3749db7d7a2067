package ports

import "time"

// Clock supplies the current time to handlers and jobs.
type Clock interface {
	Now() time.Time
}
