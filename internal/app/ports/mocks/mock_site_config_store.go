package mocks

import (
	context "context"

	netbilling "github.com/fr0stylo/nbgate/internal/netbilling"
	mock "github.com/stretchr/testify/mock"
)

// MockSiteConfigStore is a mock type for the SiteConfigStore type
type MockSiteConfigStore struct {
	mock.Mock
}

type MockSiteConfigStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSiteConfigStore) EXPECT() *MockSiteConfigStore_Expecter {
	return &MockSiteConfigStore_Expecter{mock: &_m.Mock}
}

func (_m *MockSiteConfigStore) lookup(method string, ctx context.Context, key string) (netbilling.SiteConfig, bool, error) {
	ret := _m.MethodCalled(method, ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for " + method)
	}

	var r0 netbilling.SiteConfig
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (netbilling.SiteConfig, bool, error)); ok {
		return rf(ctx, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) netbilling.SiteConfig); ok {
		r0 = rf(ctx, key)
	} else {
		r0 = ret.Get(0).(netbilling.SiteConfig)
	}
	if rf, ok := ret.Get(1).(func(context.Context, string) bool); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Get(1).(bool)
	}
	if rf, ok := ret.Get(2).(func(context.Context, string) error); ok {
		r2 = rf(ctx, key)
	} else {
		r2 = ret.Error(2)
	}
	return r0, r1, r2
}

// ByTag provides a mock function with given fields: ctx, siteTag
func (_m *MockSiteConfigStore) ByTag(ctx context.Context, siteTag string) (netbilling.SiteConfig, bool, error) {
	return _m.lookup("ByTag", ctx, siteTag)
}

// ByEntity provides a mock function with given fields: ctx, entityID
func (_m *MockSiteConfigStore) ByEntity(ctx context.Context, entityID string) (netbilling.SiteConfig, bool, error) {
	return _m.lookup("ByEntity", ctx, entityID)
}

// ByRemoteID provides a mock function with given fields: ctx, remoteID
func (_m *MockSiteConfigStore) ByRemoteID(ctx context.Context, remoteID string) (netbilling.SiteConfig, bool, error) {
	return _m.lookup("ByRemoteID", ctx, remoteID)
}

// MockSiteConfigStore_Lookup_Call is a *mock.Call that shadows Run/Return methods with type explicit version for the lookup methods
type MockSiteConfigStore_Lookup_Call struct {
	*mock.Call
}

// ByTag is a helper method to define mock.On call
//   - ctx context.Context
//   - siteTag string
func (_e *MockSiteConfigStore_Expecter) ByTag(ctx interface{}, siteTag interface{}) *MockSiteConfigStore_Lookup_Call {
	return &MockSiteConfigStore_Lookup_Call{Call: _e.mock.On("ByTag", ctx, siteTag)}
}

// ByEntity is a helper method to define mock.On call
//   - ctx context.Context
//   - entityID string
func (_e *MockSiteConfigStore_Expecter) ByEntity(ctx interface{}, entityID interface{}) *MockSiteConfigStore_Lookup_Call {
	return &MockSiteConfigStore_Lookup_Call{Call: _e.mock.On("ByEntity", ctx, entityID)}
}

// ByRemoteID is a helper method to define mock.On call
//   - ctx context.Context
//   - remoteID string
func (_e *MockSiteConfigStore_Expecter) ByRemoteID(ctx interface{}, remoteID interface{}) *MockSiteConfigStore_Lookup_Call {
	return &MockSiteConfigStore_Lookup_Call{Call: _e.mock.On("ByRemoteID", ctx, remoteID)}
}

func (_c *MockSiteConfigStore_Lookup_Call) Run(run func(ctx context.Context, key string)) *MockSiteConfigStore_Lookup_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockSiteConfigStore_Lookup_Call) Return(_a0 netbilling.SiteConfig, _a1 bool, _a2 error) *MockSiteConfigStore_Lookup_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *MockSiteConfigStore_Lookup_Call) RunAndReturn(run func(context.Context, string) (netbilling.SiteConfig, bool, error)) *MockSiteConfigStore_Lookup_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSiteConfigStore creates a new instance of MockSiteConfigStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSiteConfigStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSiteConfigStore {
	m := &MockSiteConfigStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
