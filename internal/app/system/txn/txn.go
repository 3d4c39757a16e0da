// internal/app/system/txn/txn.go
//
// Package txn runs multi-document writes atomically. On a replica set or
// sharded cluster the work runs inside a MongoDB transaction. On a
// standalone server, where transactions are unavailable, it runs as a
// saga: each step registers a compensation with Compensate, and if a later
// step fails the compensations run in reverse order.
package txn

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// unsupported is set once the server has rejected a transaction with one
// of the codes in unsupportedCode, so later calls go straight to saga mode.
var unsupported atomic.Bool

// Run executes fn atomically against db. fn must use the ctx it receives
// for every database call and may be invoked more than once.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	if log == nil {
		log = zap.NewNop()
	}
	if unsupported.Load() {
		return RunSaga(ctx, log, fn)
	}

	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			markUnsupported(log, err)
			return RunSaga(ctx, log, fn)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		markUnsupported(log, err)
		return RunSaga(ctx, log, fn)
	}
	return err
}

// markUnsupported switches the process to saga mode only for a server
// error code. A message match alone falls back for the current call.
func markUnsupported(log *zap.Logger, err error) {
	if !unsupportedCode(err) {
		log.Warn("transaction rejected; using compensating writes for this call", zap.Error(err))
		return
	}
	if unsupported.CompareAndSwap(false, true) {
		log.Warn("transactions not supported by deployment; using compensating writes",
			zap.Error(err))
	}
}

type sagaKey struct{}

type saga struct {
	steps []func(context.Context) error
}

// RunSaga executes fn without a transaction. Compensations registered by
// fn run in reverse order if it returns an error.
func RunSaga(ctx context.Context, log *zap.Logger, fn func(ctx context.Context) error) error {
	s := &saga{}
	err := fn(context.WithValue(ctx, sagaKey{}, s))
	if err == nil {
		return nil
	}
	undo := context.WithoutCancel(ctx)
	for i := len(s.steps) - 1; i >= 0; i-- {
		if cerr := s.steps[i](undo); cerr != nil && log != nil {
			log.Error("compensation failed", zap.Int("step", i), zap.Error(cerr))
		}
	}
	return err
}

// Compensate registers undo for the step that just succeeded. Inside a
// real transaction it is a no-op.
func Compensate(ctx context.Context, undo func(context.Context) error) {
	if s, ok := ctx.Value(sagaKey{}).(*saga); ok {
		s.steps = append(s.steps, undo)
	}
}

// IsNotSupported reports whether err means the deployment cannot run
// transactions or sessions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if unsupportedCode(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	has := func(a, b string) bool {
		return strings.Contains(msg, a) && strings.Contains(msg, b)
	}
	return has("transaction", "replica set") ||
		has("session", "not supported") ||
		has("transaction", "session") ||
		has("illegal", "operation")
}

func unsupportedCode(err error) bool {
	var ce mongo.CommandError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Code {
	case 20, 51, 263:
		return true
	}
	return false
}
