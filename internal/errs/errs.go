// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures (HTTPError for API
// responses) so the client receives meaningful, actionable and consistent
// error messages, while the original cause stays available for logs.
package errs
