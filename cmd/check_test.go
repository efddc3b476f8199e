package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Run("supported and readable", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("report.pdf", "%PDF-1.4")

		out := env.run("check", path)
		env.contains(out, "ok")
		env.contains(out, "application/pdf")
	})

	t.Run("unsupported extension fails", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("notes.xyz", "data")

		out, err := env.runErr("check", path)
		if err == nil {
			t.Error("check notes.xyz = nil, want error")
		}
		env.contains(out, "not supported")
	})

	t.Run("missing file fails", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("check", "missing.pdf")
		if err == nil {
			t.Error("check missing.pdf = nil, want error")
		}
		env.contains(out, "cannot extract")
	})

	t.Run("JSON verdict", func(t *testing.T) {
		env := newTestEnv(t)
		path := env.write("slides.pptx", "PK")

		out := env.run("check", "-o", "json", path)
		var res struct {
			Supported bool   `json:"supported"`
			Readable  bool   `json:"readable"`
			Extension string `json:"extension"`
		}
		if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &res); err != nil {
			t.Fatalf("invalid JSON: %v\noutput: %s", err, out)
		}
		if !res.Supported || !res.Readable || res.Extension != ".pptx" {
			t.Errorf("check = %+v, want supported readable .pptx", res)
		}
	})
}
