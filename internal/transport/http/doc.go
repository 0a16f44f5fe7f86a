// Package http implements the HTTP request handlers for the dashboard API.
// It is a thin layer between transport and business logic: handlers parse
// and validate the request, call the service layer, and render the result.
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to RFC 7807 problems
//	4. No business logic - all logic belongs in the service layer
//
// A typical request flows through these layers:
//
//	HTTP Request -> Chi Router -> Middleware -> Handler -> Service -> Source
//
// All errors follow the RFC 7807 Problem Details specification:
//
//	{
//	    "type": "/errors/source/fetch-failed",
//	    "title": "Data Source Failed",
//	    "status": 502,
//	    "detail": "the upstream CRM could not be reached",
//	    "instance": "/api/dashboard"
//	}
package http
