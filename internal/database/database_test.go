package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goschedule/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.BankConfig
		expected string
	}{
		{
			name: "basic DSN",
			cfg: &config.BankConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "goschedule",
				TLS:      "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/goschedule?parseTime=true&tls=preferred",
		},
		{
			name: "DSN without database",
			cfg: &config.BankConfig{
				Host: "localhost", Port: 3306, User: "root", Password: "secret",
			},
			expected: "root:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "DSN with TLS disabled",
			cfg: &config.BankConfig{
				Host: "localhost", Port: 3306, User: "root", Password: "secret", Database: "bank", TLS: "disable",
			},
			expected: "root:secret@tcp(localhost:3306)/bank?parseTime=true&tls=false",
		},
		{
			name: "DSN with TLS required and custom port",
			cfg: &config.BankConfig{
				Host: "remote-host", Port: 3307, User: "admin", Password: "p@ssw0rd!", Database: "bank", TLS: "required",
			},
			expected: "admin:p@ssw0rd!@tcp(remote-host:3307)/bank?parseTime=true&tls=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := config.DefaultConfig().Bank
	manager := NewManager(&cfg)

	require.NotNil(t, manager)
	assert.Same(t, &cfg, manager.config)
	assert.Nil(t, manager.DB, "DB should be nil before Connect()")
	assert.Equal(t, 3, manager.maxRetries)
}

func TestManagerCloseWithoutConnect(t *testing.T) {
	cfg := config.DefaultConfig().Bank
	manager := NewManager(&cfg)

	assert.NoError(t, manager.Close())
	assert.Error(t, manager.Ping(context.Background()), "ping on unconnected manager must fail")
}

func TestManagerAttachPingClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cfg := config.DefaultConfig().Bank
	manager := NewManager(&cfg)
	manager.Attach(db)

	mock.ExpectPing()
	assert.NoError(t, manager.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone away"))
	err = manager.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bank ping failed")

	mock.ExpectClose()
	assert.NoError(t, manager.Close())
	assert.Nil(t, manager.DB)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectRespectsContextCancellation(t *testing.T) {
	cfg := config.BankConfig{Host: "127.0.0.1", Port: 1, User: "nobody", Database: "none", TLS: "disable"}
	manager := NewManager(&cfg)
	manager.backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := manager.Connect(ctx)
	require.Error(t, err)
	assert.Nil(t, manager.DB)
	assert.Contains(t, err.Error(), "failed to connect to bank database 127.0.0.1:1")
}
