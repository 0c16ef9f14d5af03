package push

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/db/controller/gcm"
	"github.com/pushcast/pushcast/internal/db/controller/registration"
	"github.com/pushcast/pushcast/internal/db/models"
)

type fakeGateway struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	requests []request
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()

	f := &fakeGateway{status: http.StatusOK}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		var req request
		_ = json.Unmarshal(raw, &req)

		f.mu.Lock()
		f.requests = append(f.requests, req)
		status := f.status
		f.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeGateway) respond(status int) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

func (f *fakeGateway) calls() []request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]request(nil), f.requests...)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Setting{}, &models.Registration{}))

	return db
}

func newTestService(t *testing.T, batchSize int) (*Service, *fakeGateway) {
	t.Helper()

	db := testDB(t)
	gw := newFakeGateway(t)

	settings, err := NewSettingsStore(db)
	require.NoError(t, err)
	require.NoError(t, settings.Put(gcm.Settings{Endpoint: gw.URL, SenderID: "123", APIKey: "K"}))

	store, err := registration.New(db)
	require.NoError(t, err)

	return NewService(settings, store, NewGateway(time.Second), batchSize), gw
}

func TestBroadcastReachesOnlyChannel(t *testing.T) {
	ctx := context.Background()
	svc, gw := newTestService(t, 0)

	require.NoError(t, svc.Register(ctx, models.ChannelChat, "abc123", ""))
	require.NoError(t, svc.Register(ctx, models.ChannelStock, "stock1", gcm.DefaultEndpoint))

	require.NoError(t, svc.Broadcast(ctx, models.ChannelChat, "hello"))

	calls := gw.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"abc123"}, calls[0].RegistrationIDs)
	assert.Equal(t, "hello", calls[0].Data.Data)
}

func TestBroadcastGatewayError(t *testing.T) {
	ctx := context.Background()
	svc, gw := newTestService(t, 0)
	gw.respond(http.StatusInternalServerError)

	require.NoError(t, svc.Register(ctx, models.ChannelChat, "abc123", ""))

	err := svc.Broadcast(ctx, models.ChannelChat, "hello")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
	assert.Len(t, gw.calls(), 1, "no retry")
}

func TestBroadcastNoRecipients(t *testing.T) {
	ctx := context.Background()
	svc, gw := newTestService(t, 0)

	require.NoError(t, svc.Register(ctx, models.ChannelStock, "stock1", ""))

	require.ErrorIs(t, svc.Broadcast(ctx, models.ChannelChat, "hello"), ErrNoRecipients)
	assert.Empty(t, gw.calls())
}

func TestBroadcastBatched(t *testing.T) {
	ctx := context.Background()
	svc, gw := newTestService(t, 2)

	for _, tok := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Register(ctx, models.ChannelStock, tok, ""))
	}

	require.NoError(t, svc.Broadcast(ctx, models.ChannelStock, `["May", 183]`))

	calls := gw.calls()
	require.Len(t, calls, 2)

	var all []string
	for _, c := range calls {
		assert.LessOrEqual(t, len(c.RegistrationIDs), 2)
		assert.Equal(t, `["May", 183]`, c.Data.Data)
		all = append(all, c.RegistrationIDs...)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, all)
}

func TestBroadcastBatchedAbortsOnFailure(t *testing.T) {
	ctx := context.Background()
	svc, gw := newTestService(t, 1)
	gw.respond(http.StatusUnauthorized)

	require.NoError(t, svc.Register(ctx, models.ChannelStock, "a", ""))
	require.NoError(t, svc.Register(ctx, models.ChannelStock, "b", ""))

	var gwErr *GatewayError
	require.ErrorAs(t, svc.Broadcast(ctx, models.ChannelStock, "x"), &gwErr)
	assert.Len(t, gw.calls(), 1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, 0)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, svc.Register(ctx, models.ChannelChat, "dup", ""))
		require.NoError(t, svc.Register(ctx, models.ChannelChat, "dup", ""))

		n, err := svc.Count(ctx, models.ChannelChat)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("missing token is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Register(ctx, models.ChannelStock, "", ""))

		n, err := svc.Count(ctx, models.ChannelStock)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("missing token with foreign endpoint", func(t *testing.T) {
		require.NoError(t, svc.Register(ctx, models.ChannelChat, "", "https://updates.push.services.mozilla.com/wpush"))

		n, err := svc.Count(ctx, models.ChannelChat)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("foreign endpoint", func(t *testing.T) {
		err := svc.Register(ctx, models.ChannelStock, "tok", "https://push.example.com/send")
		require.ErrorIs(t, err, ErrUnsupportedGateway)

		n, err := svc.Count(ctx, models.ChannelStock)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, 0)

	require.NoError(t, svc.Register(ctx, models.ChannelChat, "c1", ""))
	require.NoError(t, svc.Register(ctx, models.ChannelStock, "s1", ""))

	require.NoError(t, svc.Clear(ctx, models.ChannelChat))
	require.NoError(t, svc.Clear(ctx, models.ChannelChat))

	n, err := svc.Count(ctx, models.ChannelChat)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = svc.Count(ctx, models.ChannelStock)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
