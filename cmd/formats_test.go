package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormats(t *testing.T) {
	t.Run("compact listing", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("formats")
		env.contains(out, ".pdf")
		env.contains(out, ".docx")
		env.contains(out, ".zabw")
	})

	t.Run("long listing", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("formats", "-l")
		env.contains(out, "application/pdf")
		env.contains(out, ".tiff")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("formats", "-o", "json")
		var entries []struct {
			Extension string `json:"extension"`
			MIME      string `json:"mime"`
		}
		if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entries); err != nil {
			t.Fatalf("invalid JSON: %v\noutput: %s", err, out)
		}
		if len(entries) != 61 {
			t.Errorf("formats = %d entries, want 61", len(entries))
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		env := newTestEnv(t)

		if _, err := env.runErr("formats", "extra"); err == nil {
			t.Error("formats extra = nil, want error")
		}
	})
}
