// Package validation binds request data into payloads and runs their
// validation.
//
// Payloads enforce their own rules (validator struct tags plus any
// cross-field checks) and report failures as ready 400 errors; this
// package passes those errors on to the global error handler.
package validation
