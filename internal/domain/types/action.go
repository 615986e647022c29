package types

const (
	ActionExternalServiceFailed = "external_service_failed"
	ActionStatementExecuted     = "sql_statement_executed"
	ActionAggregation           = "aggregate_trips"
	ActionChartRender           = "render_chart"
)
