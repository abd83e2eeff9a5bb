package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ===== RING =====

func TestRing_KeepsLastLines(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(r, "line %d\n", i)
	}

	got := r.Lines()
	want := []string{"line 3", "line 4", "line 5"}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRing_PartialWrites(t *testing.T) {
	r := NewRing(5)
	r.Write([]byte("hel"))
	r.Write([]byte("lo\nwor"))

	got := r.Lines()
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("Lines() = %v, want [hello]", got)
	}

	r.Write([]byte("ld\n"))
	got = r.Lines()
	if len(got) != 2 || got[1] != "world" {
		t.Fatalf("Lines() = %v, want [hello world]", got)
	}
}

// ===== ROLLOVER =====

func TestRollover_ShiftsBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	for run := 1; run <= 4; run++ {
		if err := rollover(path, 2); err != nil {
			t.Fatalf("rollover() run %d failed: %v", run, err)
		}
		if err := os.WriteFile(path, []byte(fmt.Sprintf("run %d\n", run)), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	expect := map[string]string{
		path:        "run 4\n",
		path + ".1": "run 3\n",
		path + ".2": "run 2\n",
	}
	for p, want := range expect {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", filepath.Base(p), data, want)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("backup beyond the limit should not exist")
	}
}

func TestRollover_NoCurrentLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), logFileName)
	if err := rollover(path, maxBackups); err != nil {
		t.Fatalf("rollover() on missing file: %v", err)
	}
}

func TestInit_WritesToDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	Logger.Info("hello", "backend", "graph")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
	lines := Recent.Lines()
	if len(lines) == 0 {
		t.Error("ring sink received nothing")
	}
}
