// Package monitor drives the memory-monitoring session.
//
// A Session owns the polling loop and the collaborators it feeds: the
// sampler (one reading per tick), the reporter (console lines), the alert
// engine (threshold checks, forced GC when self-monitoring), the CSV sink
// (durable metrics log), and, when a child command is supervised, the
// process handle (output draining and liveness).
//
// The loop is a cooperative state machine: Idle -> Running -> Finalizing ->
// Done. It suspends only at the interval sleep between ticks, where the
// three stop conditions are observed: child exit, duration expiry, and
// context cancellation. Finalization — drain remaining child output, reap
// the exit status, close the sink, print the summary — runs on every exit
// path, including sampling failure and interrupts.
package monitor
