package mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// NewMockConfigEditor creates a new instance of MockConfigEditor. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockConfigEditor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConfigEditor {
	m := &MockConfigEditor{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockConfigEditor is an autogenerated mock type for the ConfigEditor type
type MockConfigEditor struct {
	mock.Mock
}

type MockConfigEditor_Expecter struct {
	mock *mock.Mock
}

func (_m *MockConfigEditor) EXPECT() *MockConfigEditor_Expecter {
	return &MockConfigEditor_Expecter{mock: &_m.Mock}
}

// CommentOut provides a mock function for the type MockConfigEditor
func (_mock *MockConfigEditor) CommentOut(key string) error {
	ret := _mock.Called(key)

	if len(ret) == 0 {
		panic("no return value specified for CommentOut")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(string) error); ok {
		r0 = returnFunc(key)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockConfigEditor_CommentOut_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CommentOut'
type MockConfigEditor_CommentOut_Call struct {
	*mock.Call
}

// CommentOut is a helper method to define mock.On call
//   - key string
func (_e *MockConfigEditor_Expecter) CommentOut(key interface{}) *MockConfigEditor_CommentOut_Call {
	return &MockConfigEditor_CommentOut_Call{Call: _e.mock.On("CommentOut", key)}
}

func (_c *MockConfigEditor_CommentOut_Call) Run(run func(key string)) *MockConfigEditor_CommentOut_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockConfigEditor_CommentOut_Call) Return(err error) *MockConfigEditor_CommentOut_Call {
	_c.Call.Return(err)
	return _c
}

// CopyFrom provides a mock function for the type MockConfigEditor
func (_mock *MockConfigEditor) CopyFrom(templatePath string) error {
	ret := _mock.Called(templatePath)

	if len(ret) == 0 {
		panic("no return value specified for CopyFrom")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(string) error); ok {
		r0 = returnFunc(templatePath)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockConfigEditor_CopyFrom_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CopyFrom'
type MockConfigEditor_CopyFrom_Call struct {
	*mock.Call
}

// CopyFrom is a helper method to define mock.On call
//   - templatePath string
func (_e *MockConfigEditor_Expecter) CopyFrom(templatePath interface{}) *MockConfigEditor_CopyFrom_Call {
	return &MockConfigEditor_CopyFrom_Call{Call: _e.mock.On("CopyFrom", templatePath)}
}

func (_c *MockConfigEditor_CopyFrom_Call) Run(run func(templatePath string)) *MockConfigEditor_CopyFrom_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockConfigEditor_CopyFrom_Call) Return(err error) *MockConfigEditor_CopyFrom_Call {
	_c.Call.Return(err)
	return _c
}

// Path provides a mock function for the type MockConfigEditor
func (_mock *MockConfigEditor) Path() string {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for Path")
	}

	var r0 string
	if returnFunc, ok := ret.Get(0).(func() string); ok {
		r0 = returnFunc()
	} else {
		r0 = ret.Get(0).(string)
	}
	return r0
}

// MockConfigEditor_Path_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Path'
type MockConfigEditor_Path_Call struct {
	*mock.Call
}

// Path is a helper method to define mock.On call
func (_e *MockConfigEditor_Expecter) Path() *MockConfigEditor_Path_Call {
	return &MockConfigEditor_Path_Call{Call: _e.mock.On("Path")}
}

func (_c *MockConfigEditor_Path_Call) Return(path string) *MockConfigEditor_Path_Call {
	_c.Call.Return(path)
	return _c
}

// SetValue provides a mock function for the type MockConfigEditor
func (_mock *MockConfigEditor) SetValue(key string, value string) error {
	ret := _mock.Called(key, value)

	if len(ret) == 0 {
		panic("no return value specified for SetValue")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(string, string) error); ok {
		r0 = returnFunc(key, value)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// MockConfigEditor_SetValue_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetValue'
type MockConfigEditor_SetValue_Call struct {
	*mock.Call
}

// SetValue is a helper method to define mock.On call
//   - key string
//   - value string
func (_e *MockConfigEditor_Expecter) SetValue(key interface{}, value interface{}) *MockConfigEditor_SetValue_Call {
	return &MockConfigEditor_SetValue_Call{Call: _e.mock.On("SetValue", key, value)}
}

func (_c *MockConfigEditor_SetValue_Call) Return(err error) *MockConfigEditor_SetValue_Call {
	_c.Call.Return(err)
	return _c
}
