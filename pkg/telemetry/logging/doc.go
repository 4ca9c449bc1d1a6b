/*
Package logging builds the structured logger used across Caliper.

The logger is a standard *log/slog.Logger wrapped with two handlers:

  - a redaction handler that scrubs API keys, bearer tokens and email
    addresses from attribute values before they reach the output
  - a context handler that attaches request_id and session_id fields
    carried in the context

Logs are JSON by default so CI systems and log collectors can parse
them; "text" is available for local runs.
*/
package logging
