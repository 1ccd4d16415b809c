package logger

import "github.com/stretchr/testify/mock"

// MockLogger records calls through testify's mock package. WithField and
// WithFields record the call and return the same mock so assertions on the
// final log call keep working.
type MockLogger struct {
	mock.Mock
}

var _ Logger = (*MockLogger)(nil)

// Debug mocks the Debug method
func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Info mocks the Info method
func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Warn mocks the Warn method
func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Error mocks the Error method
func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// Fatal mocks the Fatal method
func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// WithField mocks the WithField method
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	m.Called(key, value)
	return m
}

// WithFields mocks the WithFields method
func (m *MockLogger) WithFields(fields map[string]interface{}) Logger {
	m.Called(fields)
	return m
}

// Sync mocks the Sync method
func (m *MockLogger) Sync() error {
	args := m.Called()
	return args.Error(0)
}
