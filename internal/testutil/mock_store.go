package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/npratt/iqfit/internal/session"
	"github.com/npratt/iqfit/internal/stats"
)

// MockStore is a testify mock of stats.Store.
type MockStore struct {
	mock.Mock
}

var _ stats.Store = (*MockStore)(nil)

// NewMockStore returns a mock whose expectations are asserted when the test ends.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	m := &MockStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get returns the configured counters.
func (m *MockStore) Get(ctx context.Context) (stats.Counters, error) {
	args := m.Called(ctx)
	return args.Get(0).(stats.Counters), args.Error(1)
}

// Increment records the call and returns the configured error.
func (m *MockStore) Increment(ctx context.Context, activity session.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}
