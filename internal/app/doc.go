// Package app provides application initialization and lifecycle management
// for the dashboard server. It wires configuration, logging, observability,
// the data source chain, the service layer and the HTTP router, and handles
// graceful shutdown.
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and the metrics pipeline
//	3. Build the source chain (remote CRM with CSV fallback)
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//	7. Set up graceful shutdown handlers
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// The package handles SIGINT and SIGTERM to ensure active requests are
// completed, websocket connections are closed cleanly and final metrics are
// flushed. Initialization errors are returned to the caller; the app never
// calls os.Exit() directly.
package app
