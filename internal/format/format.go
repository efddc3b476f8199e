// Package format maintains the registry of document formats that the
// Unstructured platform can process. It is the gatekeeper at the request
// boundary: extensions are checked here before any file is uploaded or any
// remote call is made.
//
// The set is fixed by the platform, not by this codebase - adding an entry
// here does not make a new format work, it only stops us rejecting it
// locally.
package format

import (
	"path/filepath"
	"sort"
	"strings"
)

// supported is the exact extension set accepted by the platform.
// Matching is case-insensitive; keys are stored lowercase.
var supported = map[string]struct{}{
	".abw": {}, ".bmp": {}, ".csv": {}, ".cwk": {}, ".dbf": {}, ".dif": {},
	".doc": {}, ".docm": {}, ".docx": {}, ".dot": {}, ".dotm": {}, ".eml": {},
	".epub": {}, ".et": {}, ".eth": {}, ".fods": {}, ".gif": {}, ".heic": {},
	".htm": {}, ".html": {}, ".hwp": {}, ".jpeg": {}, ".jpg": {}, ".md": {},
	".mcw": {}, ".mw": {}, ".odt": {}, ".org": {}, ".p7s": {}, ".pages": {},
	".pbd": {}, ".pdf": {}, ".png": {}, ".pot": {}, ".potm": {}, ".ppt": {},
	".pptm": {}, ".pptx": {}, ".prn": {}, ".rst": {}, ".rtf": {}, ".sdp": {},
	".sgl": {}, ".svg": {}, ".sxg": {}, ".tiff": {}, ".txt": {}, ".tsv": {},
	".uof": {}, ".uos1": {}, ".uos2": {}, ".web": {}, ".webp": {}, ".wk2": {},
	".xls": {}, ".xlsb": {}, ".xlsm": {}, ".xlsx": {}, ".xlw": {}, ".xml": {},
	".zabw": {},
}

// mimeTypes maps extensions to MIME hints for the common formats. Used only
// to annotate responses; extraction never depends on these.
var mimeTypes = map[string]string{
	".bmp":  "image/bmp",
	".csv":  "text/csv",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".eml":  "message/rfc822",
	".epub": "application/epub+zip",
	".gif":  "image/gif",
	".heic": "image/heic",
	".htm":  "text/html",
	".html": "text/html",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".md":   "text/markdown",
	".odt":  "application/vnd.oasis.opendocument.text",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rtf":  "application/rtf",
	".svg":  "image/svg+xml",
	".tiff": "image/tiff",
	".tsv":  "text/tab-separated-values",
	".txt":  "text/plain",
	".webp": "image/webp",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xml":  "application/xml",
}

// Ext returns the normalised (lowercase) extension of path, including the
// leading dot. Returns "" for paths without an extension.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Supported reports whether ext (with or without leading dot, any case) is
// a member of the supported set.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	_, ok := supported[ext]
	return ok
}

// SupportedPath reports whether the file at path has a supported extension.
func SupportedPath(path string) bool {
	return Supported(Ext(path))
}

// Extensions returns the supported extensions sorted alphabetically.
func Extensions() []string {
	exts := make([]string, 0, len(supported))
	for e := range supported {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// MIME returns a MIME type hint for ext, or "application/octet-stream" when
// no specific hint is known.
func MIME(ext string) string {
	if m, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return m
	}
	return "application/octet-stream"
}
