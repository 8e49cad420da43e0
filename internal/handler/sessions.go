package handler

import (
	"context"

	"users-table/internal/model"
	"users-table/internal/session"
)

// Sessions is the part of session.Manager the HTTP layer drives.
type Sessions interface {
	Open(ctx context.Context) (session.State, error)
	Table(ctx context.Context, id string) (session.TableView, error)
	Snapshot(ctx context.Context, id string) (session.TableView, error)
	Sort(ctx context.Context, id string, key model.SortKey) (session.TableView, error)
	Wait(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

var _ Sessions = (*session.Manager)(nil)

type FakeSessions struct {
	OpenFn     func(ctx context.Context) (session.State, error)
	TableFn    func(ctx context.Context, id string) (session.TableView, error)
	SnapshotFn func(ctx context.Context, id string) (session.TableView, error)
	SortFn     func(ctx context.Context, id string, key model.SortKey) (session.TableView, error)
	WaitFn     func(ctx context.Context, id string) error
	PingFn     func(ctx context.Context) error
}

func (f *FakeSessions) Open(ctx context.Context) (session.State, error) {
	if f.OpenFn != nil {
		return f.OpenFn(ctx)
	}
	panic("unexpected Open")
}

func (f *FakeSessions) Table(ctx context.Context, id string) (session.TableView, error) {
	if f.TableFn != nil {
		return f.TableFn(ctx, id)
	}
	panic("unexpected Table")
}

func (f *FakeSessions) Snapshot(ctx context.Context, id string) (session.TableView, error) {
	if f.SnapshotFn != nil {
		return f.SnapshotFn(ctx, id)
	}
	panic("unexpected Snapshot")
}

func (f *FakeSessions) Sort(ctx context.Context, id string, key model.SortKey) (session.TableView, error) {
	if f.SortFn != nil {
		return f.SortFn(ctx, id, key)
	}
	panic("unexpected Sort")
}

func (f *FakeSessions) Wait(ctx context.Context, id string) error {
	if f.WaitFn != nil {
		return f.WaitFn(ctx, id)
	}
	panic("unexpected Wait")
}

func (f *FakeSessions) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	return nil
}
