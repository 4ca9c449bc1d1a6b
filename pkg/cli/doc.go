/*
Package cli provides command-line interface utilities for Caliper.

The cli package includes typed command errors, exit code mapping, and
signal handling helpers used by the caliper command.

Exit Codes:

Caliper distinguishes "the lint run found violations" from "the tool
itself failed" so CI pipelines can branch on the result:

	code := cli.ExitCode(err)
	os.Exit(code)

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
