package connect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebuladb/nebula/internal/database"
	"github.com/nebuladb/nebula/internal/errs"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := database.NewConnectionConfig()
	cfg.Backend = database.BackendSQLite
	cfg.FilePath = ":memory:"

	conn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer conn.Close(context.Background())

	assert.NoError(t, conn.TestConnection(context.Background()))
}

func TestOpen_MongoDBUnsupported(t *testing.T) {
	cfg := database.NewConnectionConfig()
	cfg.Backend = database.BackendMongoDB

	conn, err := Open(context.Background(), cfg)
	assert.Nil(t, conn)
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedType(err))
	assert.Contains(t, err.Error(), "MongoDB")
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := database.NewConnectionConfig()
	cfg.Backend = database.Backend("oracle")

	conn, err := Open(context.Background(), cfg)
	assert.Nil(t, conn)
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedType(err))
	assert.Contains(t, err.Error(), "oracle")
}

// The factory itself performs no I/O for supported backends beyond what the
// driver's Connect does; a bad mysql address must surface as a connection
// failure, never as an unsupported type.
func TestOpen_MySQLBadAddress(t *testing.T) {
	cfg := database.NewConnectionConfig()
	cfg.Backend = database.BackendMySQL
	cfg.Host = "127.0.0.1"
	cfg.Port = 1 // nothing listens here

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errs.IsConnectionFailed(err))
}
