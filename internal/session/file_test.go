package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/seedcampus/seed-client/internal/types"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewFileStore(path, "test-secret")
}

func TestFileRestoreEmpty(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Restore()
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestFilePersistRestore(t *testing.T) {
	store := newTestFileStore(t)

	user := &types.User{
		ID:    "u1",
		Name:  "Alice",
		Email: "alice@campus.edu",
		Stats: types.Stats{Posts: 3},
	}
	if err := store.Persist(user); err != nil {
		t.Fatalf("persist: %v", err)
	}

	got, err := store.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got.ID != "u1" || got.Name != "Alice" || got.Stats.Posts != 3 {
		t.Fatalf("restored wrong user: %+v", got)
	}
}

func TestFileTamperedToken(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Persist(&types.User{ID: "u1", Name: "Alice"}); err != nil {
		t.Fatalf("persist: %v", err)
	}

	// flip the token in the file and make sure the session no longer restores
	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var st map[string]any
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	st["current_user"] = st["current_user"].(string) + "x"
	data, _ = json.Marshal(st)
	if err := os.WriteFile(store.path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err = store.Restore()
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("tampered token should not restore, got %v", err)
	}
}

func TestFileWrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	if err := NewFileStore(path, "secret-a").Persist(&types.User{ID: "u1"}); err != nil {
		t.Fatalf("persist: %v", err)
	}

	_, err := NewFileStore(path, "secret-b").Restore()
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("wrong secret should not restore, got %v", err)
	}
}

func TestFileCorruptFile(t *testing.T) {
	store := newTestFileStore(t)
	if err := os.WriteFile(store.path, []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := store.Restore()
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("corrupt file should read as empty session, got %v", err)
	}
}

func TestFileLikedPosts(t *testing.T) {
	store := newTestFileStore(t)

	for _, id := range []types.ID{"1", "2", "1"} {
		if err := store.AddLikedPost(id); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	ids, err := store.LikedPosts()
	if err != nil {
		t.Fatalf("liked posts: %v", err)
	}
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Fatalf("liked posts should dedup, got %v", ids)
	}
}

func TestFileCurrentEventID(t *testing.T) {
	store := newTestFileStore(t)

	id, err := store.CurrentEventID()
	if err != nil || id != "" {
		t.Fatalf("empty store: id=%q err=%v", id, err)
	}

	if err := store.SetCurrentEventID("ev7"); err != nil {
		t.Fatalf("set: %v", err)
	}
	id, err = store.CurrentEventID()
	if err != nil || id != "ev7" {
		t.Fatalf("got id=%q err=%v", id, err)
	}
}

func TestFileClear(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Persist(&types.User{ID: "u1"}); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := store.AddLikedPost("1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.SetCurrentEventID("ev1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if _, err := store.Restore(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("user survived clear: %v", err)
	}
	if ids, _ := store.LikedPosts(); len(ids) != 0 {
		t.Fatalf("liked posts survived clear: %v", ids)
	}
	if id, _ := store.CurrentEventID(); id != "" {
		t.Fatalf("current event survived clear: %q", id)
	}
}

func TestFilePersistKeepsLikedPosts(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.AddLikedPost("1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Persist(&types.User{ID: "u1"}); err != nil {
		t.Fatalf("persist: %v", err)
	}

	ids, err := store.LikedPosts()
	if err != nil || len(ids) != 1 {
		t.Fatalf("persist should not touch liked posts: %v %v", ids, err)
	}
}
