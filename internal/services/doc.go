// Package services implements the business logic layer between the HTTP
// handlers and the data sources. The dashboard service owns the
// fetch -> transform -> aggregate pipeline and the snapshot cache; the
// health service reports process and dependency status.
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Error handling and transformation at the service boundary
package services
