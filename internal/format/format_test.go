package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want bool
	}{
		{"pdf with dot", ".pdf", true},
		{"pdf without dot", "pdf", true},
		{"uppercase", ".PDF", true},
		{"mixed case", ".DocX", true},
		{"unusual but listed", ".uos1", true},
		{"image", ".bmp", true},
		{"unknown", ".xyz", false},
		{"near miss", ".pdfx", false},
		{"empty", "", false},
		{"dot only", ".", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Supported(tc.ext))
		})
	}
}

func TestSupportedPath(t *testing.T) {
	assert.True(t, SupportedPath("/tmp/report.pdf"))
	assert.True(t, SupportedPath("notes.MD"))
	assert.False(t, SupportedPath("notes.xyz"))
	assert.False(t, SupportedPath("noextension"))
	// Directory components must not influence the verdict.
	assert.False(t, SupportedPath("dir.pdf/file.xyz"))
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	assert.Len(t, exts, 61)
	assert.IsIncreasing(t, exts)
	for _, e := range exts {
		assert.True(t, Supported(e), "listed extension %q must be supported", e)
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".pdf", Ext("Report.PDF"))
	assert.Equal(t, ".gz", Ext("archive.tar.gz"))
	assert.Equal(t, "", Ext("Makefile"))
}

func TestMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", MIME(".pdf"))
	assert.Equal(t, "text/html", MIME(".HTM"))
	assert.Equal(t, "application/octet-stream", MIME(".hwp"))
}
