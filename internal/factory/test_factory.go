package factory

import (
	"time"

	"github.com/veldt-labs/quartermaster/internal/config"
	"github.com/veldt-labs/quartermaster/internal/dependencies/mocks"
	"github.com/veldt-labs/quartermaster/internal/storage/memory"
	"github.com/veldt-labs/quartermaster/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with an in-memory store
// and a mocked clock.
func NewTestApp(cfg *config.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(cfg, store, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
