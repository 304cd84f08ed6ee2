package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seedcampus/seed-client/internal/types"
)

// FileStore keeps the session in one small JSON file, the default backend
// for single-machine CLI use.
type FileStore struct {
	path   string
	secret []byte
}

type fileState struct {
	UserToken      string     `json:"current_user,omitempty"`
	LikedPosts     []types.ID `json:"liked_posts,omitempty"`
	CurrentEventID types.ID   `json:"current_event_id,omitempty"`
}

func NewFileStore(path, secret string) *FileStore {
	return &FileStore{path: path, secret: []byte(secret)}
}

func (s *FileStore) load() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &fileState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		// an unreadable file is treated as an empty session
		return &fileState{}, nil
	}
	return &st, nil
}

func (s *FileStore) save(st *fileState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Restore() (*types.User, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	if st.UserToken == "" {
		return nil, ErrNoSession
	}
	user, err := verifyUser(st.UserToken, s.secret)
	if err != nil {
		return nil, ErrNoSession
	}
	return user, nil
}

func (s *FileStore) Persist(user *types.User) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	token, err := signUser(user, s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	st.UserToken = token
	return s.save(st)
}

// Clear drops the whole session state; liked posts and the viewed event id
// belong to the signed-out user and go with it.
func (s *FileStore) Clear() error {
	return s.save(&fileState{})
}

func (s *FileStore) LikedPosts() ([]types.ID, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	return st.LikedPosts, nil
}

func (s *FileStore) AddLikedPost(id types.ID) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range st.LikedPosts {
		if existing == id {
			return nil
		}
	}
	st.LikedPosts = append(st.LikedPosts, id)
	return s.save(st)
}

func (s *FileStore) CurrentEventID() (types.ID, error) {
	st, err := s.load()
	if err != nil {
		return "", err
	}
	return st.CurrentEventID, nil
}

func (s *FileStore) SetCurrentEventID(id types.ID) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	st.CurrentEventID = id
	return s.save(st)
}
