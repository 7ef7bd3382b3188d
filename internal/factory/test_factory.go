package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/hvztracker/internal/dependencies/mocks"
	"github.com/mcoot/hvztracker/internal/notify"
	"github.com/mcoot/hvztracker/internal/services/auth"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	"github.com/mcoot/hvztracker/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// An optional notifier receives report notifications.
func NewTestApp(notifier ...notify.Notifier) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	cfg := Config{
		AuthConfig: auth.Config{Cost: bcrypt.MinCost, CacheTTL: time.Minute},
	}
	if len(notifier) > 0 {
		cfg.Notifier = notify.Multi(notifier)
	}

	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
