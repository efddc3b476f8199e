// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise command
// parsing and the credential-free paths (formats, check, version, and
// extract's local validation). Extraction against the real platform needs
// credentials and a network, so the pipeline itself is covered by unit
// tests in internal/extract with fake platform and storage clients.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the docproc binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "docproc-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "docproc"
		if os.PathSeparator == '\\' {
			binaryName = "docproc.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary working directory for the binary. HOME is
// redirected into it so audit logs and config files never touch the real
// home directory, and credentials are stripped so local validation paths
// are what gets tested.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	return &testEnv{t: t, dir: dir, binary: binary}
}

// run executes docproc with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("docproc %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes docproc and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.dir,
		"AWS_S3_SOURCE_BUCKET=",
		"AWS_S3_DESTINATION_BUCKET=",
		"AWS_KEY=",
		"AWS_SECRET=",
		"UNSTRUCTURED_API_KEY=",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// write creates a file in the test directory and returns its path.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// contains asserts that out contains want.
func (e *testEnv) contains(out, want string) {
	e.t.Helper()
	if !strings.Contains(out, want) {
		e.t.Errorf("output does not contain %q\noutput: %s", want, out)
	}
}
