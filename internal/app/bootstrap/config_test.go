// internal/app/bootstrap/config_test.go
package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	base := AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "inkwell",
		PageCacheTTL:  20 * time.Second,
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := ValidateConfig(nil, base, logger); err != nil {
			t.Fatalf("ValidateConfig: %v", err)
		}
	})

	t.Run("bad mongo URI rejected", func(t *testing.T) {
		cfg := base
		cfg.MongoURI = "http://not-a-mongo-uri"
		if err := ValidateConfig(nil, cfg, logger); err == nil {
			t.Fatal("expected error for non-mongodb URI")
		}
	})

	t.Run("zero cache TTL rejected", func(t *testing.T) {
		cfg := base
		cfg.PageCacheTTL = 0
		if err := ValidateConfig(nil, cfg, logger); err == nil {
			t.Fatal("expected error for zero page_cache_ttl")
		}
	})
}
