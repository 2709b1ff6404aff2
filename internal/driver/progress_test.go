package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type recordSink struct {
	mu     sync.Mutex
	events map[string][]Status
}

func (r *recordSink) OnEvent(ev ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = make(map[string][]Status)
	}
	r.events[ev.File] = append(r.events[ev.File], ev.Status)
}

func TestTokenizeFiles_Progress(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.feature")
	bad := filepath.Join(dir, "bad.feature")
	missing := filepath.Join(dir, "missing.feature")
	if err := os.WriteFile(good, []byte("Feature: ok\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("| a |\n| a | b |\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	sink := &recordSink{}
	_, _, err := TokenizeFiles(context.Background(), dir, []string{good, bad, missing}, Options{Progress: sink}, 2)
	if err != nil {
		t.Fatalf("TokenizeFiles: %v", err)
	}

	want := map[string]Status{good: StatusDone, bad: StatusError, missing: StatusError}
	for file, final := range want {
		got := sink.events[file]
		if len(got) != 3 || got[0] != StatusQueued || got[1] != StatusWorking || got[2] != final {
			t.Errorf("%s: events %v, want [queued working %s]", filepath.Base(file), got, final)
		}
		if !got[len(got)-1].Finished() {
			t.Errorf("%s: last status %s is not final", filepath.Base(file), got[len(got)-1])
		}
	}
}
