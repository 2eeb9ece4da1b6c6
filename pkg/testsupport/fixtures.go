package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a raw fixture from the calling package's testdata
// directory, failing the test when it is missing.
func LoadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// LoadJSONFixture decodes a JSON fixture into the map shape the site service
// stores for SEO and homepage config blobs.
func LoadJSONFixture(t *testing.T, name string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(LoadFixture(t, name), &out); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return out
}
