// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing evaluation records and scenario catalogs.
// These helpers are intentionally minimal and avoid adding third-party
// dependencies. They are not intended for production usage.
package testutil
