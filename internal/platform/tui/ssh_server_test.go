package tui

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestSSHServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "runs.db"),
		Variant:     "fake",
		TickRate:    30,
		IdleTimeout: time.Minute,
	}, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	return srv
}

func TestNewSSHServerRejectsUnknownVariant(t *testing.T) {
	dir := t.TempDir()
	_, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "runs.db"),
		Variant:     "no-such-variant",
	}, nil)
	if err == nil {
		t.Error("NewSSHServer() should reject an unknown variant")
	}
}

func TestShutdownClosesStoreInPlace(t *testing.T) {
	srv := newTestSSHServer(t)
	store := srv.store
	if store == nil {
		t.Fatal("server should open the run log")
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if srv.store != store {
		t.Error("Shutdown() must not replace the store sessions are reading")
	}
	if _, err := store.TopRuns("fake", 1); err == nil {
		t.Error("run log should be closed after Shutdown()")
	}

	// A second close is a no-op
	srv.closeStore()
}

func TestSessionVariant(t *testing.T) {
	srv := newTestSSHServer(t)
	t.Cleanup(func() { srv.closeStore() })

	tests := []struct {
		command []string
		want    string
	}{
		{nil, "fake"},
		{[]string{"fake"}, "fake"},
		{[]string{"unknown"}, "fake"},
	}
	for _, tc := range tests {
		if got := srv.sessionVariant(tc.command); got != tc.want {
			t.Errorf("sessionVariant(%v) = %q, want %q", tc.command, got, tc.want)
		}
	}
}
