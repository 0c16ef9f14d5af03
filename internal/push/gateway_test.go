package push

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody(t *testing.T) {
	body, err := Body([]string{"abc123"}, "hello")
	require.NoError(t, err)
	assert.JSONEq(t, `{"registration_ids":["abc123"],"data":{"data":"hello"}}`, string(body))
}

func TestGatewaySend(t *testing.T) {
	var (
		gotAuth, gotType, gotMethod string
		gotBody                     []byte
	)

	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{"error":"InvalidRegistration"}`))
	}))
	defer srv.Close()

	g := NewGateway(time.Second)

	require.NoError(t, g.Send(context.Background(), srv.URL, "K", []string{"abc123"}, "hello"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "key=K", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, `{"registration_ids":["abc123"],"data":{"data":"hello"}}`, string(gotBody))

	status.Store(http.StatusInternalServerError)
	err := g.Send(context.Background(), srv.URL, "K", []string{"abc123"}, "hello")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
}

func TestGatewayRejectsUntrustedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewGateway(time.Second).Send(context.Background(), srv.URL, "K", []string{"t"}, "p")
	require.Error(t, err)

	var gwErr *GatewayError
	assert.NotErrorAs(t, err, &gwErr)
}

func TestNewGatewayDefaultTimeout(t *testing.T) {
	assert.Equal(t, defaultTimeout, NewGateway(0).client.Timeout)
	assert.Equal(t, 5*time.Second, NewGateway(5*time.Second).client.Timeout)
}
