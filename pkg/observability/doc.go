/*
Package observability turns entity lifecycle hooks into Prometheus metrics.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	e := entity.New(schema, data, entity.WithHooks(metrics.Hooks()))

Every validation pass increments schematic_validations_total and, for each
failing field, schematic_field_errors_total.
*/
package observability
