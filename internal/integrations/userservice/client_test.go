package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/7":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"role":"supplier","name":"Tour Co"}`))
		case "/internal/users/8":
			w.WriteHeader(http.StatusNotFound)
		case "/internal/users/9":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	user, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "supplier", user.Role)

	_, err = client.GetUser(context.Background(), 8)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetUser(context.Background(), 9)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetUser(context.Background(), 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetUser_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.GetUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
