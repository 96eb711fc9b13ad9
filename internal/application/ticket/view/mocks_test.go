package view

import (
	"context"
	"sync"

	"loftwork/internal/application/ticket/usecases"
	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/logger"
)

type mockCreator struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error)
}

func (m *mockCreator) Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &usecases.CreateTicketResult{}, nil
}

type mockUpdater struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error)
}

func (m *mockUpdater) Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &usecases.UpdateTicketResult{}, nil
}

type mockDeleter struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.DeleteTicketCommand) (*usecases.DeleteTicketResult, error)
}

func (m *mockDeleter) Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) (*usecases.DeleteTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &usecases.DeleteTicketResult{}, nil
}

type mockLister struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

func (m *mockLister) Execute(ctx context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &usecases.ListTicketsResult{}, nil
}

type mockMover struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.MoveTicketCommand) (*usecases.MoveTicketResult, error)
}

func (m *mockMover) Execute(ctx context.Context, cmd usecases.MoveTicketCommand) (*usecases.MoveTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &usecases.MoveTicketResult{}, nil
}

type mockNotifier struct {
	mu       sync.Mutex
	resolved []ticket.Snapshot
}

func (m *mockNotifier) NotifyResolved(ctx context.Context, snapshot ticket.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved = append(m.resolved, snapshot)
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resolved)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                 {}
func (nopLogger) Info(string, ...any)                  {}
func (nopLogger) Warn(string, ...any)                  {}
func (nopLogger) Error(string, ...any)                 {}
func (n nopLogger) With(...any) logger.Interface       { return n }
func (n nopLogger) Named(string) logger.Interface      { return n }
func (nopLogger) Debugw(string, ...interface{})        {}
func (nopLogger) Infow(string, ...interface{})         {}
func (nopLogger) Warnw(string, ...interface{})         {}
func (nopLogger) Errorw(string, ...interface{})        {}
