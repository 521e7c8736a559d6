package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

// ReadFixture returns the file contents or fails the test.
func ReadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

// LoadGolden decodes the JSON file at path into v or fails the test.
func LoadGolden(t testing.TB, path string, v any) {
	t.Helper()
	if err := json.Unmarshal(ReadFixture(t, path), v); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
}
