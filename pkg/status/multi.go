package status

import (
	"context"

	"github.com/walteh/findrep/pkg/operation"
)

// 🔀 Multi forwards every event to each sink in order
type Multi []operation.Sink

var _ operation.Sink = Multi(nil)

func (m Multi) OnProgress(ctx context.Context, p operation.Progress) {
	for _, s := range m {
		if s != nil {
			s.OnProgress(ctx, p)
		}
	}
}

func (m Multi) OnFinished(ctx context.Context, o operation.Outcome) {
	for _, s := range m {
		if s != nil {
			s.OnFinished(ctx, o)
		}
	}
}
