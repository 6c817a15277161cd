package mocks

import (
	context "context"

	ports "github.com/fr0stylo/nbgate/internal/app/ports"
	mock "github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// PublishQueueItem provides a mock function with given fields: ctx, item
func (_m *MockEventPublisher) PublishQueueItem(ctx context.Context, item ports.QueueItem) error {
	ret := _m.Called(ctx, item)

	if len(ret) == 0 {
		panic("no return value specified for PublishQueueItem")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, ports.QueueItem) error); ok {
		r0 = rf(ctx, item)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockEventPublisher_PublishQueueItem_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PublishQueueItem'
type MockEventPublisher_PublishQueueItem_Call struct {
	*mock.Call
}

// PublishQueueItem is a helper method to define mock.On call
//   - ctx context.Context
//   - item ports.QueueItem
func (_e *MockEventPublisher_Expecter) PublishQueueItem(ctx interface{}, item interface{}) *MockEventPublisher_PublishQueueItem_Call {
	return &MockEventPublisher_PublishQueueItem_Call{Call: _e.mock.On("PublishQueueItem", ctx, item)}
}

func (_c *MockEventPublisher_PublishQueueItem_Call) Run(run func(ctx context.Context, item ports.QueueItem)) *MockEventPublisher_PublishQueueItem_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(ports.QueueItem))
	})
	return _c
}

func (_c *MockEventPublisher_PublishQueueItem_Call) Return(_a0 error) *MockEventPublisher_PublishQueueItem_Call {
	_c.Call.Return(_a0)
	return _c
}

// PublishPaymentVerified provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishPaymentVerified(ctx context.Context, event ports.PaymentVerified) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for PublishPaymentVerified")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, ports.PaymentVerified) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockEventPublisher_PublishPaymentVerified_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PublishPaymentVerified'
type MockEventPublisher_PublishPaymentVerified_Call struct {
	*mock.Call
}

// PublishPaymentVerified is a helper method to define mock.On call
//   - ctx context.Context
//   - event ports.PaymentVerified
func (_e *MockEventPublisher_Expecter) PublishPaymentVerified(ctx interface{}, event interface{}) *MockEventPublisher_PublishPaymentVerified_Call {
	return &MockEventPublisher_PublishPaymentVerified_Call{Call: _e.mock.On("PublishPaymentVerified", ctx, event)}
}

func (_c *MockEventPublisher_PublishPaymentVerified_Call) Run(run func(ctx context.Context, event ports.PaymentVerified)) *MockEventPublisher_PublishPaymentVerified_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(ports.PaymentVerified))
	})
	return _c
}

func (_c *MockEventPublisher_PublishPaymentVerified_Call) Return(_a0 error) *MockEventPublisher_PublishPaymentVerified_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
