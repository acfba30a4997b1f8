// Package database provides the GORM database connection used by the catalog
// entry store.
//
// MySQL is the production driver; an in-memory SQLite database backs the test
// suites. The connection is optional: when it fails at startup the application
// logs a warning and keeps serving from live wiki data without a persistent
// catalog cache.
package database
