// Package log provides a best-effort audit trail of extraction requests.
// Entries are stored in ~/.docproc/log/docproc-log.db and record request
// metadata only (path, format, outcome, timing) - never extracted content.
//
// Use the fluent builder to construct and write entries:
//
//	log.Event("cli:extract", "extract").
//		Path(p).
//		Format(ext).
//		Write(err)
//
// The source parameter is "{surface}:{operation}": "cli:extract" for CLI
// commands, "mcp:extract_document" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single audit log entry.
type Entry struct {
	Source string // e.g. "cli:extract", "mcp:extract_document"
	Action string // verb: extract, check, formats, serve
	Path   string // source document path
	Format string // normalised extension, e.g. ".pdf"

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether the operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API. Create with [Event],
// chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the source document path for this operation.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Format sets the normalised source extension.
func (b *Builder) Format(ext string) *Builder {
	b.entry.Format = ext
	return b
}

// Detail adds a key-value pair to the entry's detail map. Can be called
// multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort
// logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetOrigin sets the origin identifier (a hash of the working directory)
// for subsequent log entries, enabling cross-deployment queries without
// recording raw paths.
func SetOrigin(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.origin = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
