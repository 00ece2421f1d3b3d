package testutil

import (
	"sync"
	"testing"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/inkwellhq/inkwell/internal/app/resources"
	"go.uber.org/zap"
)

var (
	bootTemplatesOnce sync.Once
	bootTemplatesErr  error
)

// BootTemplates compiles every template set registered in the test binary
// (the shared layout plus the sets of the imported feature packages) and
// installs the engine, so handler tests can assert on rendered pages.
func BootTemplates(t *testing.T) {
	t.Helper()
	bootTemplatesOnce.Do(func() {
		resources.LoadSharedTemplates()
		logger := zap.NewNop()
		eng := templates.New(false)
		if err := eng.Boot(logger); err != nil {
			bootTemplatesErr = err
			return
		}
		templates.UseEngine(eng, logger)
	})
	if bootTemplatesErr != nil {
		t.Fatalf("boot templates: %v", bootTemplatesErr)
	}
}
