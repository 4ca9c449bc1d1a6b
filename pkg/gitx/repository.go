package gitx

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is a read-only view of a local git repository.
type Repository struct {
	repo *gogit.Repository
}

// Open finds the repository containing path, walking up parent
// directories the way the git CLI does.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %q: %w", path, err)
	}
	return &Repository{repo: repo}, nil
}

// HeadCommit returns the hash of the current HEAD commit.
func (r *Repository) HeadCommit() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// ChangedFiles lists paths changed between baseRef and HEAD, sorted.
// Renames report the new path; deletions report the old one.
func (r *Repository) ChangedFiles(baseRef string) ([]string, error) {
	changes, err := r.changes(baseRef)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(changes))
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		seen[name] = struct{}{}
	}

	files := make([]string, 0, len(seen))
	for name := range seen {
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// ChangedGoFiles lists changed .go files that still exist at HEAD.
// Paths are resolved against the worktree root, so they can be opened
// from any working directory.
func (r *Repository) ChangedGoFiles(baseRef string) ([]string, error) {
	root, err := r.Root()
	if err != nil {
		return nil, err
	}
	changes, err := r.changes(baseRef)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, change := range changes {
		// Deletions have nothing left to lint.
		if change.To.Name == "" {
			continue
		}
		if strings.HasSuffix(change.To.Name, ".go") {
			files = append(files, filepath.Join(root, change.To.Name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Root returns the absolute path of the worktree root.
func (r *Repository) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("resolving worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// Diff returns the unified diff between baseRef and HEAD.
func (r *Repository) Diff(baseRef string) (string, error) {
	changes, err := r.changes(baseRef)
	if err != nil {
		return "", err
	}

	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("building patch against %q: %w", baseRef, err)
	}
	return patch.String(), nil
}

func (r *Repository) changes(baseRef string) (object.Changes, error) {
	baseTree, err := r.treeAt(baseRef)
	if err != nil {
		return nil, err
	}

	headRef, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	headTree, err := r.treeAtHash(headRef.Hash())
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}
	return changes, nil
}

func (r *Repository) treeAt(rev string) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return r.treeAtHash(*hash)
}

func (r *Repository) treeAtHash(hash plumbing.Hash) (*object.Tree, error) {
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree for %s: %w", hash, err)
	}
	return tree, nil
}
