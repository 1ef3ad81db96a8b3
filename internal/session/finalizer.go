package session

import "context"

// Finalizer receives the snapshot of a session that just ended. It is called
// exactly once per session.
type Finalizer interface {
	Finalize(ctx context.Context, snap Snapshot) error
}

// FinalizerFunc adapts a function to Finalizer.
type FinalizerFunc func(ctx context.Context, snap Snapshot) error

func (f FinalizerFunc) Finalize(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// Beginner is implemented by finalizers that also want to record the start
// of a session.
type Beginner interface {
	Begin(ctx context.Context, snap Snapshot) error
}
