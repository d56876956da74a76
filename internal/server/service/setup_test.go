package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beamhq/beam/internal/server/store"
	"github.com/beamhq/beam/internal/server/store/drivers/sqlite"
	"github.com/beamhq/beam/pkg/cryptox"
	"github.com/beamhq/beam/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestSigner(t *testing.T) *jwtx.Signer {
	t.Helper()
	s, err := jwtx.NewSigner([]byte("0123456789abcdef0123456789abcdef"), "beam-test", time.Hour)
	require.NoError(t, err)
	return s
}

// bootstrapOwner registers the first account so later tests exercise the
// gated branch.
func bootstrapOwner(t *testing.T, st store.Store) {
	t.Helper()
	reg := &RegisterService{Store: st}
	_, err := reg.Register(context.Background(), "admin", "hunter22", "")
	require.NoError(t, err)
}
