package mocks

import (
	context "context"

	ports "github.com/fr0stylo/nbgate/internal/app/ports"
	mock "github.com/stretchr/testify/mock"
)

// MockRemoteMemberStore is a mock type for the RemoteMemberStore type
type MockRemoteMemberStore struct {
	mock.Mock
}

type MockRemoteMemberStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRemoteMemberStore) EXPECT() *MockRemoteMemberStore_Expecter {
	return &MockRemoteMemberStore_Expecter{mock: &_m.Mock}
}

// RecordRemoteMembers provides a mock function with given fields: ctx, members
func (_m *MockRemoteMemberStore) RecordRemoteMembers(ctx context.Context, members []ports.RemoteMember) error {
	ret := _m.Called(ctx, members)

	if len(ret) == 0 {
		panic("no return value specified for RecordRemoteMembers")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []ports.RemoteMember) error); ok {
		r0 = rf(ctx, members)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockRemoteMemberStore_RecordRemoteMembers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RecordRemoteMembers'
type MockRemoteMemberStore_RecordRemoteMembers_Call struct {
	*mock.Call
}

// RecordRemoteMembers is a helper method to define mock.On call
//   - ctx context.Context
//   - members []ports.RemoteMember
func (_e *MockRemoteMemberStore_Expecter) RecordRemoteMembers(ctx interface{}, members interface{}) *MockRemoteMemberStore_RecordRemoteMembers_Call {
	return &MockRemoteMemberStore_RecordRemoteMembers_Call{Call: _e.mock.On("RecordRemoteMembers", ctx, members)}
}

func (_c *MockRemoteMemberStore_RecordRemoteMembers_Call) Run(run func(ctx context.Context, members []ports.RemoteMember)) *MockRemoteMemberStore_RecordRemoteMembers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]ports.RemoteMember))
	})
	return _c
}

func (_c *MockRemoteMemberStore_RecordRemoteMembers_Call) Return(_a0 error) *MockRemoteMemberStore_RecordRemoteMembers_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockRemoteMemberStore creates a new instance of MockRemoteMemberStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRemoteMemberStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRemoteMemberStore {
	m := &MockRemoteMemberStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
