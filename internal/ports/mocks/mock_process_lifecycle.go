package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	"github.com/vanshika-srivastava/coretest/internal/domain"
)

// NewMockProcessLifecycle creates a new instance of MockProcessLifecycle. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockProcessLifecycle(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProcessLifecycle {
	m := &MockProcessLifecycle{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockProcessLifecycle is an autogenerated mock type for the ProcessLifecycle type
type MockProcessLifecycle struct {
	mock.Mock
}

type MockProcessLifecycle_Expecter struct {
	mock *mock.Mock
}

func (_m *MockProcessLifecycle) EXPECT() *MockProcessLifecycle_Expecter {
	return &MockProcessLifecycle_Expecter{mock: &_m.Mock}
}

func (_mock *MockProcessLifecycle) errorReturn(method string, args ...interface{}) error {
	ret := _mock.Called(args...)

	if len(ret) == 0 {
		panic("no return value specified for " + method)
	}
	return ret.Error(0)
}

// DeleteAllInformation provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) DeleteAllInformation(ctx context.Context) error {
	return _mock.errorReturn("DeleteAllInformation", ctx)
}

// MockProcessLifecycle_DeleteAllInformation_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteAllInformation'
type MockProcessLifecycle_DeleteAllInformation_Call struct {
	*mock.Call
}

// DeleteAllInformation is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockProcessLifecycle_Expecter) DeleteAllInformation(ctx interface{}) *MockProcessLifecycle_DeleteAllInformation_Call {
	return &MockProcessLifecycle_DeleteAllInformation_Call{Call: _e.mock.On("DeleteAllInformation", ctx)}
}

func (_c *MockProcessLifecycle_DeleteAllInformation_Call) Return(err error) *MockProcessLifecycle_DeleteAllInformation_Call {
	_c.Call.Return(err)
	return _c
}

// KillAll provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) KillAll(ctx context.Context) error {
	return _mock.errorReturn("KillAll", ctx)
}

// MockProcessLifecycle_KillAll_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'KillAll'
type MockProcessLifecycle_KillAll_Call struct {
	*mock.Call
}

// KillAll is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockProcessLifecycle_Expecter) KillAll(ctx interface{}) *MockProcessLifecycle_KillAll_Call {
	return &MockProcessLifecycle_KillAll_Call{Call: _e.mock.On("KillAll", ctx)}
}

func (_c *MockProcessLifecycle_KillAll_Call) Return(err error) *MockProcessLifecycle_KillAll_Call {
	_c.Call.Return(err)
	return _c
}

// SetTestFlags provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) SetTestFlags(flags domain.TestFlags) {
	_mock.Called(flags)
}

// MockProcessLifecycle_SetTestFlags_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetTestFlags'
type MockProcessLifecycle_SetTestFlags_Call struct {
	*mock.Call
}

// SetTestFlags is a helper method to define mock.On call
//   - flags domain.TestFlags
func (_e *MockProcessLifecycle_Expecter) SetTestFlags(flags interface{}) *MockProcessLifecycle_SetTestFlags_Call {
	return &MockProcessLifecycle_SetTestFlags_Call{Call: _e.mock.On("SetTestFlags", flags)}
}

func (_c *MockProcessLifecycle_SetTestFlags_Call) Return() *MockProcessLifecycle_SetTestFlags_Call {
	_c.Call.Return()
	return _c
}

// Spawn provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) Spawn(ctx context.Context, command []string, dir string) (domain.ProcessHandle, error) {
	ret := _mock.Called(ctx, command, dir)

	if len(ret) == 0 {
		panic("no return value specified for Spawn")
	}

	var r0 domain.ProcessHandle
	if returnFunc, ok := ret.Get(0).(func(context.Context, []string, string) (domain.ProcessHandle, error)); ok {
		return returnFunc(ctx, command, dir)
	}
	r0 = ret.Get(0).(domain.ProcessHandle)
	return r0, ret.Error(1)
}

// MockProcessLifecycle_Spawn_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Spawn'
type MockProcessLifecycle_Spawn_Call struct {
	*mock.Call
}

// Spawn is a helper method to define mock.On call
//   - ctx context.Context
//   - command []string
//   - dir string
func (_e *MockProcessLifecycle_Expecter) Spawn(ctx interface{}, command interface{}, dir interface{}) *MockProcessLifecycle_Spawn_Call {
	return &MockProcessLifecycle_Spawn_Call{Call: _e.mock.On("Spawn", ctx, command, dir)}
}

func (_c *MockProcessLifecycle_Spawn_Call) Return(handle domain.ProcessHandle, err error) *MockProcessLifecycle_Spawn_Call {
	_c.Call.Return(handle, err)
	return _c
}

// TrackArtifact provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) TrackArtifact(ctx context.Context, path string) error {
	return _mock.errorReturn("TrackArtifact", ctx, path)
}

// MockProcessLifecycle_TrackArtifact_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'TrackArtifact'
type MockProcessLifecycle_TrackArtifact_Call struct {
	*mock.Call
}

// TrackArtifact is a helper method to define mock.On call
//   - ctx context.Context
//   - path string
func (_e *MockProcessLifecycle_Expecter) TrackArtifact(ctx interface{}, path interface{}) *MockProcessLifecycle_TrackArtifact_Call {
	return &MockProcessLifecycle_TrackArtifact_Call{Call: _e.mock.On("TrackArtifact", ctx, path)}
}

func (_c *MockProcessLifecycle_TrackArtifact_Call) Return(err error) *MockProcessLifecycle_TrackArtifact_Call {
	_c.Call.Return(err)
	return _c
}

// WaitAndDiscard provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) WaitAndDiscard(ctx context.Context, handle domain.ProcessHandle) error {
	return _mock.errorReturn("WaitAndDiscard", ctx, handle)
}

// MockProcessLifecycle_WaitAndDiscard_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'WaitAndDiscard'
type MockProcessLifecycle_WaitAndDiscard_Call struct {
	*mock.Call
}

// WaitAndDiscard is a helper method to define mock.On call
//   - ctx context.Context
//   - handle domain.ProcessHandle
func (_e *MockProcessLifecycle_Expecter) WaitAndDiscard(ctx interface{}, handle interface{}) *MockProcessLifecycle_WaitAndDiscard_Call {
	return &MockProcessLifecycle_WaitAndDiscard_Call{Call: _e.mock.On("WaitAndDiscard", ctx, handle)}
}

func (_c *MockProcessLifecycle_WaitAndDiscard_Call) Return(err error) *MockProcessLifecycle_WaitAndDiscard_Call {
	_c.Call.Return(err)
	return _c
}

// WaitForQuiescence provides a mock function for the type MockProcessLifecycle
func (_mock *MockProcessLifecycle) WaitForQuiescence(ctx context.Context) error {
	return _mock.errorReturn("WaitForQuiescence", ctx)
}

// MockProcessLifecycle_WaitForQuiescence_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'WaitForQuiescence'
type MockProcessLifecycle_WaitForQuiescence_Call struct {
	*mock.Call
}

// WaitForQuiescence is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockProcessLifecycle_Expecter) WaitForQuiescence(ctx interface{}) *MockProcessLifecycle_WaitForQuiescence_Call {
	return &MockProcessLifecycle_WaitForQuiescence_Call{Call: _e.mock.On("WaitForQuiescence", ctx)}
}

func (_c *MockProcessLifecycle_WaitForQuiescence_Call) Return(err error) *MockProcessLifecycle_WaitForQuiescence_Call {
	_c.Call.Return(err)
	return _c
}
