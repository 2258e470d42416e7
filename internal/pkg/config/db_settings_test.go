//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{
			name:          "sqlite in memory",
			settings:      &DatabaseSettings{Type: SqliteDbType},
			expectedError: false,
		},
		{
			name:          "sqlite file",
			settings:      &DatabaseSettings{Type: SqliteDbType, DSN: "catalog.db"},
			expectedError: false,
		},
		{
			name: "postgres with dsn",
			settings: &DatabaseSettings{
				Type: PostgresDbType,
				DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
				Name: "keys",
			},
			expectedError: false,
		},
		{
			name:          "postgres without dsn",
			settings:      &DatabaseSettings{Type: PostgresDbType},
			expectedError: true,
		},
		{
			name:          "missing type",
			settings:      &DatabaseSettings{DSN: "catalog.db"},
			expectedError: true,
		},
		{
			name:          "unsupported type",
			settings:      &DatabaseSettings{Type: "mysql", DSN: "root@tcp(localhost)/keys"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
