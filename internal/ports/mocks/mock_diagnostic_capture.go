package mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// NewMockDiagnosticCapture creates a new instance of MockDiagnosticCapture. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDiagnosticCapture(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDiagnosticCapture {
	m := &MockDiagnosticCapture{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockDiagnosticCapture is an autogenerated mock type for the DiagnosticCapture type
type MockDiagnosticCapture struct {
	mock.Mock
}

type MockDiagnosticCapture_Expecter struct {
	mock *mock.Mock
}

func (_m *MockDiagnosticCapture) EXPECT() *MockDiagnosticCapture_Expecter {
	return &MockDiagnosticCapture_Expecter{mock: &_m.Mock}
}

// Dump provides a mock function for the type MockDiagnosticCapture
func (_mock *MockDiagnosticCapture) Dump() {
	_mock.Called()
}

// MockDiagnosticCapture_Dump_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Dump'
type MockDiagnosticCapture_Dump_Call struct {
	*mock.Call
}

// Dump is a helper method to define mock.On call
func (_e *MockDiagnosticCapture_Expecter) Dump() *MockDiagnosticCapture_Dump_Call {
	return &MockDiagnosticCapture_Dump_Call{Call: _e.mock.On("Dump")}
}

func (_c *MockDiagnosticCapture_Dump_Call) Return() *MockDiagnosticCapture_Dump_Call {
	_c.Call.Return()
	return _c
}

// Install provides a mock function for the type MockDiagnosticCapture
func (_mock *MockDiagnosticCapture) Install() error {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for Install")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func() error); ok {
		r0 = returnFunc()
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockDiagnosticCapture_Install_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Install'
type MockDiagnosticCapture_Install_Call struct {
	*mock.Call
}

// Install is a helper method to define mock.On call
func (_e *MockDiagnosticCapture_Expecter) Install() *MockDiagnosticCapture_Install_Call {
	return &MockDiagnosticCapture_Install_Call{Call: _e.mock.On("Install")}
}

func (_c *MockDiagnosticCapture_Install_Call) Return(err error) *MockDiagnosticCapture_Install_Call {
	_c.Call.Return(err)
	return _c
}
