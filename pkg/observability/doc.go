/*
Package observability provides tools for monitoring the registration flow.

Metrics exports prometheus counters and histograms fed by domain.FlowHooks and by
the local waitlist API. LoggingHooks emits the same events as structured log lines,
and Combine merges several hook sets into one.
*/
package observability
