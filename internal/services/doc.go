// Package services implements the business logic layer between the HTTP
// handlers and the data pipeline. Services own the loaded dataset, apply
// request filters and shape analytics results into response types.
//
// Services follow these principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Error handling via sentinel errors the transport layer can map
package services
