package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnix(t *testing.T, tools ...string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("player process tests need a unix shell")
	}
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}
}

func TestExecBackend_CloseKillsPlayer(t *testing.T) {
	requireUnix(t, "sleep")

	// "sleep 30" stands in for a long recitation.
	backend := NewExecBackend("sleep", nil, nil)
	res, err := backend.Open(context.Background(), "30")
	require.NoError(t, err)

	select {
	case <-res.Done():
		t.Fatal("player exited before Close")
	default:
	}

	start := time.Now()
	require.NoError(t, res.Close())
	assert.Less(t, time.Since(start), 5*time.Second)

	select {
	case <-res.Done():
	default:
		t.Fatal("Done must be closed once Close returns")
	}

	// Closing twice is fine.
	assert.NoError(t, res.Close())
}

func TestExecBackend_NaturalEnd(t *testing.T) {
	requireUnix(t, "true")

	backend := NewExecBackend("true", nil, nil)
	res, err := backend.Open(context.Background(), "ignored")
	require.NoError(t, err)

	select {
	case <-res.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("player did not finish")
	}
	assert.NoError(t, res.Close())
}

func TestExecBackend_MissingPlayer(t *testing.T) {
	backend := NewExecBackend("definitely-not-a-player-binary", nil, nil)
	_, err := backend.Open(context.Background(), "https://example.invalid/001001.mp3")
	assert.Error(t, err)
}

func TestExecBackend_ProbeRejectsMissingAudio(t *testing.T) {
	requireUnix(t, "sleep")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	backend := NewExecBackend("sleep", nil, nil).WithProbe(server.Client())
	_, err := backend.Open(context.Background(), server.URL+"/Alafasy/mp3/999999.mp3")
	assert.Error(t, err)
}

func TestExecBackend_WithSlot(t *testing.T) {
	requireUnix(t, "sleep")

	slot := NewSlot(NewExecBackend("sleep", nil, nil), nil)
	ctx := context.Background()

	st, err := slot.Toggle(ctx, 1, "30")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, st.State)

	st, err = slot.Toggle(ctx, 2, "30")
	require.NoError(t, err)
	assert.Equal(t, Status{State: StatePlaying, VerseID: 2}, st)

	slot.Release()
	assert.Equal(t, StateIdle, slot.Status().State)
}

func TestNewExecBackend_Defaults(t *testing.T) {
	b := NewExecBackend("", nil, nil)
	assert.Equal(t, DefaultPlayerCommand, b.command)
	assert.Equal(t, DefaultPlayerArgs, b.args)

	b = NewExecBackend("ffplay", []string{"-nodisp", "-autoexit"}, nil)
	assert.Equal(t, "ffplay", b.command)
	assert.Equal(t, []string{"-nodisp", "-autoexit"}, b.args)
}
