// Package persistence provides the database repository of the key pair catalog.
// It uses GORM as the ORM layer on top of SQLite or PostgreSQL and validates
// records before they are written.
package persistence
