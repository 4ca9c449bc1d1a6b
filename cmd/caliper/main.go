// Caliper is a design linter and AI-assisted review tool for Go
// repositories.
//
// It parses Go source with go/ast and checks it against a catalog of
// design rules (function length, nesting depth, magic numbers, and so
// on), producing reports for humans and CI systems. A companion review
// command sends the diff of a branch to the Anthropic API and merges
// the model's comments with the linter's findings. A demo server
// exposes the linter over HTTP and streams synthetic oscilloscope
// waveforms over WebSocket.
//
// Usage:
//
//	# Lint the current module
//	caliper lint ./...
//
//	# Lint and re-run on file changes
//	caliper lint --watch ./pkg
//
//	# Review the current branch against main
//	caliper review --base main
//
//	# Start the demo server
//	caliper serve
//
//	# Show the rule catalog
//	caliper rules
//
// For complete documentation, see: https://github.com/benlabs/caliper
package main

func main() {
	Execute()
}
