package cmd

import (
	"testing"
)

// Extraction against the real platform requires credentials; these tests
// cover the local validation that must happen before any remote call.
func TestExtract_LocalValidation(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("notes.xyz", "data")

		out, err := env.runErr("extract", path)
		if err == nil {
			t.Error("extract notes.xyz = nil, want error")
		}
		env.contains(out, "unsupported format")
	})

	t.Run("missing file", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("extract", "missing.pdf")
		if err == nil {
			t.Error("extract missing.pdf = nil, want error")
		}
		env.contains(out, "unreadable source")
	})

	t.Run("missing credentials reported after local checks pass", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("report.pdf", "%PDF-1.4")

		out, err := env.runErr("extract", path)
		if err == nil {
			t.Error("extract without credentials = nil, want error")
		}
		env.contains(out, "UNSTRUCTURED_API_KEY")
	})

	t.Run("invalid output format", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("report.pdf", "%PDF-1.4")

		out, err := env.runErr("extract", "--output-format", "yaml", path)
		if err == nil {
			t.Error("extract --output-format yaml = nil, want error")
		}
		env.contains(out, "invalid output format")
	})

	t.Run("JSON error envelope", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("notes.xyz", "data")

		out, _ := env.runErr("extract", "-o", "json", path)
		env.contains(out, `"error"`)
		env.contains(out, "unsupported format")
	})
}
