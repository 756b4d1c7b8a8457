package production

import (
	"context"
	"sync/atomic"

	"github.com/comalice/automatonx/internal/core"
)

// ChannelPublisher hands each StepRecord of a Runner to a channel consumer.
// A full channel drops the record instead of stalling the runner.
type ChannelPublisher struct {
	ch      chan<- core.StepRecord
	dropped atomic.Uint64
}

// NewChannelPublisher publishes into ch. Close closes ch.
func NewChannelPublisher(ch chan<- core.StepRecord) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish offers step to the channel. A cancelled context wins over a
// pending send.
func (p *ChannelPublisher) Publish(ctx context.Context, step core.StepRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.ch <- step:
	default:
		p.dropped.Add(1)
	}
	return nil
}

// Dropped reports how many records were discarded because the channel was full.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
