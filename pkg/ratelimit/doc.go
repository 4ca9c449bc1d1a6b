/*
Package ratelimit implements per-client request limiting for the demo
service.

Two limits apply to every client:

  - a token bucket enforcing a sustained requests-per-minute rate with
    a configurable burst allowance
  - an optional daily cap on total requests, reset on a cron schedule
    (midnight UTC by default)

Clients are keyed by the caller, normally the remote IP. State for
clients idle past a full day is dropped at each daily reset.
*/
package ratelimit
