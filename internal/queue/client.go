package queue

import "context"

// Client hands screening jobs to a queue backend. A nil Client means the
// service completes screenings in-process instead.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
