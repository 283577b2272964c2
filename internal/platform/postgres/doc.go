// Package postgres provides the PostgreSQL-specific implementation of
// the data storage interfaces defined in the internal/store package.
// It handles the details of query execution, connection-failure
// containment, and mapping between domain entities and database rows.
package postgres
