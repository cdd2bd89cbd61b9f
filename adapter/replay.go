package adapter

import (
	"context"

	"github.com/lmi/i2cdecode"
)

const ReplayName = "replay"

func init() {
	if err := i2cdecode.RegisterAdapter(&i2cdecode.AdapterInfo{
		Name:        ReplayName,
		Description: "Plays back a fixed event sequence",
		New:         NewReplay,
	}); err != nil {
		panic(err)
	}
}

// Replay hands out cfg.Events in order and then closes Recv.
type Replay struct {
	*i2cdecode.BaseAdapter
	events []i2cdecode.Event
}

func NewReplay(cfg *i2cdecode.AdapterConfig) (i2cdecode.Adapter, error) {
	return &Replay{
		BaseAdapter: i2cdecode.NewBaseAdapter(ReplayName, cfg),
		events:      append([]i2cdecode.Event(nil), cfg.Events...),
	}, nil
}

func (r *Replay) Open(ctx context.Context) error {
	go r.recvManager(ctx)
	return nil
}

func (r *Replay) recvManager(ctx context.Context) {
	defer r.EndOfStream()
	for _, ev := range r.events {
		if err := r.Deliver(ctx, ev); err != nil {
			return
		}
	}
	r.Info("replay done")
}
