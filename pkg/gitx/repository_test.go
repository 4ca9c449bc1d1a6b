package gitx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo builds a repository with two commits: the first adds
// base.go, the second adds changed.go and notes.txt and rewrites
// base.go.
func testRepo(t *testing.T) (dir string, baseHash string) {
	t.Helper()
	dir = t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	sig := &object.Signature{Name: "test", Email: "test@localhost", When: time.Now()}

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
	}

	write("base.go", "package demo\n")
	first, err := wt.Commit("initial", &gogit.CommitOptions{Author: sig})
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}

	write("base.go", "package demo\n\nvar x = 1\n")
	write("changed.go", "package demo\n\nfunc New() {}\n")
	write("notes.txt", "notes\n")
	if _, err := wt.Commit("second", &gogit.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("second commit: %v", err)
	}

	return dir, first.String()
}

func TestOpenDetectsDotGit(t *testing.T) {
	dir, _ := testRepo(t)

	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Open(sub); err != nil {
		t.Fatalf("Open from subdirectory: %v", err)
	}
}

func TestOpenNotARepo(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error opening a plain directory")
	}
}

func TestHeadCommit(t *testing.T) {
	dir, baseHash := testRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	head, err := repo.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}
	if len(head) != 40 {
		t.Errorf("HeadCommit() = %q, want 40-char hash", head)
	}
	if head == baseHash {
		t.Error("HEAD should be the second commit")
	}
}

func TestChangedFiles(t *testing.T) {
	dir, baseHash := testRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	files, err := repo.ChangedFiles(baseHash)
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	want := []string{"base.go", "changed.go", "notes.txt"}
	if len(files) != len(want) {
		t.Fatalf("ChangedFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestChangedGoFiles(t *testing.T) {
	dir, baseHash := testRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	files, err := repo.ChangedGoFiles(baseHash)
	if err != nil {
		t.Fatalf("ChangedGoFiles: %v", err)
	}
	for _, f := range files {
		if !strings.HasSuffix(f, ".go") {
			t.Errorf("non-Go file in result: %q", f)
		}
	}
	if len(files) != 2 {
		t.Errorf("ChangedGoFiles() = %v, want base.go and changed.go", files)
	}
}

func TestChangedGoFilesResolvableFromSubdirectory(t *testing.T) {
	dir, baseHash := testRepo(t)

	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	repo, err := Open(sub)
	if err != nil {
		t.Fatalf("Open from subdirectory: %v", err)
	}

	files, err := repo.ChangedGoFiles(baseHash)
	if err != nil {
		t.Fatalf("ChangedGoFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("ChangedGoFiles() = %v, want base.go and changed.go", files)
	}
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("path %q should be absolute", f)
		}
		if _, err := os.Stat(f); err != nil {
			t.Errorf("changed file not reachable: %v", err)
		}
	}
}

func TestDiff(t *testing.T) {
	dir, baseHash := testRepo(t)
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	diff, err := repo.Diff(baseHash)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(diff, "changed.go") {
		t.Errorf("diff missing added file:\n%s", diff)
	}
	if !strings.Contains(diff, "+var x = 1") {
		t.Errorf("diff missing modified line:\n%s", diff)
	}
}
