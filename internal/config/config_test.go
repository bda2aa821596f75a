package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	c := FromEnv()
	if c.TenantCacheTTL != DefaultTenantCacheTTL {
		t.Errorf("TenantCacheTTL = %v, want default %v", c.TenantCacheTTL, DefaultTenantCacheTTL)
	}
	if c.BedrockModelID != DefaultBedrockModelID {
		t.Errorf("BedrockModelID = %q, want default %q", c.BedrockModelID, DefaultBedrockModelID)
	}
}

func TestFromEnv_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.yaml")
	body := "tenant_cache_ttl: 30s\ncta_max_display: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GATEWAY_CONFIG_FILE", path)

	c := FromEnv()
	if c.FileLoadError != nil {
		t.Fatalf("FileLoadError = %v, want nil", c.FileLoadError)
	}
	if c.TenantCacheTTL != 30*time.Second {
		t.Errorf("TenantCacheTTL = %v, want 30s", c.TenantCacheTTL)
	}
	if c.CTAMaxDisplay != 7 {
		t.Errorf("CTAMaxDisplay = %d, want 7", c.CTAMaxDisplay)
	}
	if c.KnowledgeTTL != DefaultKnowledgeTTL {
		t.Errorf("KnowledgeTTL = %v, want untouched default %v", c.KnowledgeTTL, DefaultKnowledgeTTL)
	}
}

func TestFromEnv_MissingConfigFileSetsLoadError(t *testing.T) {
	t.Setenv("GATEWAY_CONFIG_FILE", filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	c := FromEnv()
	if c.FileLoadError == nil {
		t.Error("want FileLoadError for missing config file")
	}
	if c.TenantCacheTTL != DefaultTenantCacheTTL {
		t.Errorf("TenantCacheTTL = %v, want default fallback %v", c.TenantCacheTTL, DefaultTenantCacheTTL)
	}
}
