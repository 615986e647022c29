package docs

// @title           Taxi Fare Dashboard API
// @version         1.0
// @description     Fetches NYC taxi trips from a Databricks SQL warehouse, aggregates the fares and serves the dashboard charts as an HTML page, Plotly JSON and PNG images.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// Generate with:
//   swag init -g docs/swagger_dashboard.go -d ./,./internal/adapter/http/handler --instanceName dashboard -o docs --outputTypes go
