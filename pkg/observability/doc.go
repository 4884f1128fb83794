/*
Package observability exposes module tree activity to monitoring systems.

Metrics registers Prometheus counters and hands back module.Hooks that feed
them, so any Init or Update call can be observed:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	m, err := m.Init(key, module.WithHooks(metrics.Hooks()))

Combine merges several Hooks values into one.
*/
package observability
