package queue

import "context"

// Client hands report jobs to a queue backend. A nil Client means jobs are
// processed in-process instead.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
