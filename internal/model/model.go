// Package model holds the domain types shared by the repository,
// service and handler layers, together with the error taxonomy the
// HTTP surface translates into status codes.
package model
