// Package gitx wraps go-git for the repository queries Caliper needs:
// resolving HEAD, listing files changed against a base ref, and
// producing a unified diff for AI review.
package gitx
