// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mocktrack

import (
	mock "github.com/stretchr/testify/mock"

	interop "go.amzn.com/trainsim/railway/interop"
)

type MockSwitchActuator struct {
	mock.Mock
}

func (_m *MockSwitchActuator) SetSwitch(id int, d interop.SwitchDirection) {
	_m.Called(id, d)
}

func NewMockSwitchActuator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSwitchActuator {
	mock := &MockSwitchActuator{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
