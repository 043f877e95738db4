package cache

import (
	"strings"
	"testing"
)

func TestPasteKey(t *testing.T) {
	t.Parallel()

	key := pasteKey("6f1c5f5e-3d9a-4a59-9f55-2c1a43b4d1a7")

	if !strings.HasPrefix(key, pasteKeyPrefix) {
		t.Errorf("key %q should start with %q", key, pasteKeyPrefix)
	}
	if key != "paste:6f1c5f5e-3d9a-4a59-9f55-2c1a43b4d1a7" {
		t.Errorf("pasteKey = %q", key)
	}
}

func TestPasteKey_Distinct(t *testing.T) {
	t.Parallel()

	if pasteKey("a") == pasteKey("b") {
		t.Error("different UUIDs should map to different keys")
	}
	if pasteKey("a")+negCacheKeySuffix == pasteKey("a") {
		t.Error("negative entry must not share the paste key")
	}
}
