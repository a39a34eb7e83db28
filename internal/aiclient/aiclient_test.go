package aiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{"candidates":[{"content":{"parts":[{"text":"Keep going!"}]}}]}`

// stubClient returns a client pointed at a server that replies with the
// given status sequence, recording sleeps instead of waiting.
func stubClient(t *testing.T, statuses []int) (*Client, *int, *[]time.Duration) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := statuses[calls]
		calls++
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(okBody))
		}
	}))
	t.Cleanup(server.Close)

	var slept []time.Duration
	c := NewWithEndpoint("test-key", server.URL)
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &calls, &slept
}

func TestGenerateSucceedsOnThirdAttempt(t *testing.T) {
	c, calls, slept := stubClient(t, []int{500, 500, 200})

	text, err := c.Generate(context.Background(), "remind me")
	require.NoError(t, err)
	assert.Equal(t, "Keep going!", text)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
}

func TestGenerateReturnsLastFailureAfterThreeServerErrors(t *testing.T) {
	c, calls, _ := stubClient(t, []int{500, 500, 500})

	_, err := c.Generate(context.Background(), "remind me")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.StatusCode)
	assert.Equal(t, 3, *calls)
}

func TestGenerateRetriesOnTooManyRequests(t *testing.T) {
	c, calls, _ := stubClient(t, []int{429, 200})

	text, err := c.Generate(context.Background(), "remind me")
	require.NoError(t, err)
	assert.Equal(t, "Keep going!", text)
	assert.Equal(t, 2, *calls)
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	c, calls, slept := stubClient(t, []int{400})

	_, err := c.Generate(context.Background(), "remind me")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 400, statusErr.StatusCode)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, *slept)
}

func TestGenerateNetworkFailureReturnsError(t *testing.T) {
	c := NewWithEndpoint("test-key", "http://127.0.0.1:1")
	c.sleep = func(time.Duration) {}

	_, err := c.Generate(context.Background(), "remind me")
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "network failure should not be a StatusError")
}

func TestGenerateEmptyBodyIsSoftFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates":[]}`))
	}))
	t.Cleanup(server.Close)

	c := NewWithEndpoint("test-key", server.URL)
	text, err := c.Generate(context.Background(), "remind me")
	assert.Error(t, err)
	assert.Empty(t, text)
}
