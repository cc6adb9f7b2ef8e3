// Package service contains the business logic.
//
// It sits between the handler layer and the integrations in lib. It
// receives validated data from the handler and performs the business
// operations.
package service
