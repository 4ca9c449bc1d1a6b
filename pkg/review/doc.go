/*
Package review implements the AI-assisted code review helper used by
"caliper review" in CI.

A review run:

 1. collects the diff between a base ref and HEAD via pkg/gitx
 2. lints the changed Go files and folds the findings into the prompt
 3. scrubs secrets from the diff before it leaves the machine
 4. asks the Anthropic API for structured review comments
 5. validates returned comments against the parsed diff so the model
    cannot place comments on lines the change never touched

When no API key is configured the run degrades to lint-only instead of
failing, so the same CI job works on forks without secrets.
*/
package review
