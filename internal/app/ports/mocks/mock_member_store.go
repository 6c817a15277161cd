package mocks

import (
	context "context"

	ports "github.com/fr0stylo/nbgate/internal/app/ports"
	mock "github.com/stretchr/testify/mock"
)

// MockMemberStore is a mock type for the MemberStore type
type MockMemberStore struct {
	mock.Mock
}

type MockMemberStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMemberStore) EXPECT() *MockMemberStore_Expecter {
	return &MockMemberStore_Expecter{mock: &_m.Mock}
}

// UpsertMembers provides a mock function with given fields: ctx, siteTag, members
func (_m *MockMemberStore) UpsertMembers(ctx context.Context, siteTag string, members []ports.MemberCredential) error {
	ret := _m.Called(ctx, siteTag, members)

	if len(ret) == 0 {
		panic("no return value specified for UpsertMembers")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []ports.MemberCredential) error); ok {
		r0 = rf(ctx, siteTag, members)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockMemberStore_Write_Call is a *mock.Call that shadows Run/Return methods for UpsertMembers and ReplaceMembers
type MockMemberStore_Write_Call struct {
	*mock.Call
}

// UpsertMembers is a helper method to define mock.On call
//   - ctx context.Context
//   - siteTag string
//   - members []ports.MemberCredential
func (_e *MockMemberStore_Expecter) UpsertMembers(ctx interface{}, siteTag interface{}, members interface{}) *MockMemberStore_Write_Call {
	return &MockMemberStore_Write_Call{Call: _e.mock.On("UpsertMembers", ctx, siteTag, members)}
}

// ReplaceMembers provides a mock function with given fields: ctx, siteTag, members
func (_m *MockMemberStore) ReplaceMembers(ctx context.Context, siteTag string, members []ports.MemberCredential) error {
	ret := _m.Called(ctx, siteTag, members)

	if len(ret) == 0 {
		panic("no return value specified for ReplaceMembers")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []ports.MemberCredential) error); ok {
		r0 = rf(ctx, siteTag, members)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// ReplaceMembers is a helper method to define mock.On call
//   - ctx context.Context
//   - siteTag string
//   - members []ports.MemberCredential
func (_e *MockMemberStore_Expecter) ReplaceMembers(ctx interface{}, siteTag interface{}, members interface{}) *MockMemberStore_Write_Call {
	return &MockMemberStore_Write_Call{Call: _e.mock.On("ReplaceMembers", ctx, siteTag, members)}
}

func (_c *MockMemberStore_Write_Call) Run(run func(ctx context.Context, siteTag string, members []ports.MemberCredential)) *MockMemberStore_Write_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].([]ports.MemberCredential))
	})
	return _c
}

func (_c *MockMemberStore_Write_Call) Return(_a0 error) *MockMemberStore_Write_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockMemberStore_Write_Call) RunAndReturn(run func(context.Context, string, []ports.MemberCredential) error) *MockMemberStore_Write_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteMembers provides a mock function with given fields: ctx, siteTag, usernames
func (_m *MockMemberStore) DeleteMembers(ctx context.Context, siteTag string, usernames []string) (int, error) {
	ret := _m.Called(ctx, siteTag, usernames)

	if len(ret) == 0 {
		panic("no return value specified for DeleteMembers")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) (int, error)); ok {
		return rf(ctx, siteTag, usernames)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) int); ok {
		r0 = rf(ctx, siteTag, usernames)
	} else {
		r0 = ret.Get(0).(int)
	}
	if rf, ok := ret.Get(1).(func(context.Context, string, []string) error); ok {
		r1 = rf(ctx, siteTag, usernames)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockMemberStore_DeleteMembers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteMembers'
type MockMemberStore_DeleteMembers_Call struct {
	*mock.Call
}

// DeleteMembers is a helper method to define mock.On call
//   - ctx context.Context
//   - siteTag string
//   - usernames []string
func (_e *MockMemberStore_Expecter) DeleteMembers(ctx interface{}, siteTag interface{}, usernames interface{}) *MockMemberStore_DeleteMembers_Call {
	return &MockMemberStore_DeleteMembers_Call{Call: _e.mock.On("DeleteMembers", ctx, siteTag, usernames)}
}

func (_c *MockMemberStore_DeleteMembers_Call) Return(_a0 int, _a1 error) *MockMemberStore_DeleteMembers_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockMemberStore_DeleteMembers_Call) RunAndReturn(run func(context.Context, string, []string) (int, error)) *MockMemberStore_DeleteMembers_Call {
	_c.Call.Return(run)
	return _c
}

// ExistingMembers provides a mock function with given fields: ctx, siteTag, usernames
func (_m *MockMemberStore) ExistingMembers(ctx context.Context, siteTag string, usernames []string) (map[string]bool, error) {
	ret := _m.Called(ctx, siteTag, usernames)

	if len(ret) == 0 {
		panic("no return value specified for ExistingMembers")
	}

	var r0 map[string]bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) (map[string]bool, error)); ok {
		return rf(ctx, siteTag, usernames)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, []string) map[string]bool); ok {
		r0 = rf(ctx, siteTag, usernames)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]bool)
	}
	if rf, ok := ret.Get(1).(func(context.Context, string, []string) error); ok {
		r1 = rf(ctx, siteTag, usernames)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// MockMemberStore_ExistingMembers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ExistingMembers'
type MockMemberStore_ExistingMembers_Call struct {
	*mock.Call
}

// ExistingMembers is a helper method to define mock.On call
//   - ctx context.Context
//   - siteTag string
//   - usernames []string
func (_e *MockMemberStore_Expecter) ExistingMembers(ctx interface{}, siteTag interface{}, usernames interface{}) *MockMemberStore_ExistingMembers_Call {
	return &MockMemberStore_ExistingMembers_Call{Call: _e.mock.On("ExistingMembers", ctx, siteTag, usernames)}
}

func (_c *MockMemberStore_ExistingMembers_Call) Return(_a0 map[string]bool, _a1 error) *MockMemberStore_ExistingMembers_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// NewMockMemberStore creates a new instance of MockMemberStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockMemberStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMemberStore {
	m := &MockMemberStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
