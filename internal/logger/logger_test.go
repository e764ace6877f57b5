package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogFilePathDefaultsToWorkdir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := logFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	realTmp, _ := filepath.EvalSymlinks(tmpDir)
	realDir, _ := filepath.EvalSymlinks(filepath.Dir(got))
	if realDir != filepath.Join(realTmp, defaultDirName) {
		t.Fatalf("want dir %s got %s", filepath.Join(realTmp, defaultDirName), realDir)
	}
	if filepath.Base(got) != defaultFilename {
		t.Fatalf("want filename %s got %s", defaultFilename, filepath.Base(got))
	}
}

func TestReleaseModeWritesFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "wakaf-release.log"})
	log.Info("donation_submit_ok")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "wakaf-release.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(content), "donation_submit_ok") {
		t.Fatalf("log file missing event, got=%s", string(content))
	}
}

func TestDebugModeSkipsFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "debug.log"})
	log.Info("debug_event")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestMaskPhone(t *testing.T) {
	cases := map[string]string{
		"081234567890": "0812*****890",
		"08123":        "*****",
		"":             "",
	}
	for in, want := range cases {
		if got := MaskPhone(in); got != want {
			t.Fatalf("MaskPhone(%q) want %q got %q", in, want, got)
		}
	}
}
