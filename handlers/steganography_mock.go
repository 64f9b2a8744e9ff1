package handlers

// Hand-written mock in the style of mockgen, built on go.uber.org/mock
// so handler tests can stub the orchestration layer.

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/ciphernest/stego/service"
)

// MockSteganography is a mock of the service.Steganography interface.
type MockSteganography struct {
	ctrl     *gomock.Controller
	recorder *MockSteganographyMockRecorder
}

// MockSteganographyMockRecorder is the mock recorder for MockSteganography.
type MockSteganographyMockRecorder struct {
	mock *MockSteganography
}

// NewMockSteganography creates a new mock instance.
func NewMockSteganography(ctrl *gomock.Controller) *MockSteganography {
	mock := &MockSteganography{ctrl: ctrl}
	mock.recorder = &MockSteganographyMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSteganography) EXPECT() *MockSteganographyMockRecorder {
	return m.recorder
}

func (m *MockSteganography) Inspect(req *service.InspectRequest) (*service.InspectResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Inspect", req)
	res, _ := ret[0].(*service.InspectResult)
	err, _ := ret[1].(error)
	return res, err
}

func (mr *MockSteganographyMockRecorder) Inspect(req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Inspect", reflect.TypeOf((*MockSteganography)(nil).Inspect), req)
}

func (m *MockSteganography) Embed(req *service.EmbedRequest) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Embed", req)
	res, _ := ret[0].([]byte)
	err, _ := ret[1].(error)
	return res, err
}

func (mr *MockSteganographyMockRecorder) Embed(req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Embed", reflect.TypeOf((*MockSteganography)(nil).Embed), req)
}

func (m *MockSteganography) Extract(req *service.ExtractRequest) (*service.ExtractResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Extract", req)
	res, _ := ret[0].(*service.ExtractResult)
	err, _ := ret[1].(error)
	return res, err
}

func (mr *MockSteganographyMockRecorder) Extract(req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Extract", reflect.TypeOf((*MockSteganography)(nil).Extract), req)
}
