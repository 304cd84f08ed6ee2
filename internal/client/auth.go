package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seedcampus/seed-client/internal/types"
	"github.com/seedcampus/seed-client/internal/utils/password"
)

const (
	defaultAvatar = "https://randomuser.me/api/portraits/lego/1.jpg"
	defaultBio    = "New sustainability enthusiast"
)

// Login authenticates against the backend and adopts the returned user.
// The encoded password is kept on the user so the settings page can verify
// it before a password change.
func (c *Client) Login(ctx context.Context, email, plainPassword string) (*types.User, error) {
	encoded := password.Encode(plainPassword)

	resp, err := c.gw.Call(ctx, "login", map[string]any{
		"username": email,
		"password": encoded,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("login failed: %s", resp.Message())
	}

	var user types.User
	if err := resp.Decode("user", &user); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	user.Password = encoded

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()
	c.persistUser(&user)

	slog.Info("logged in", slog.String("user_id", string(user.ID)))
	return c.CurrentUser(), nil
}

// Register creates an account with the platform's default avatar, bio and
// role, then adopts it as the active session.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.User, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	encoded := password.Encode(req.Password)

	resp, err := c.gw.Call(ctx, "register", map[string]any{
		"name":       req.Name,
		"email":      req.Email,
		"username":   req.Username,
		"password":   encoded,
		"avatar":     defaultAvatar,
		"department": "",
		"bio":        defaultBio,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("registration failed: %s", resp.Message())
	}

	// the backend assigns id and avatar; everything else is what we sent
	var created struct {
		ID     types.ID `json:"id"`
		Avatar string   `json:"avatar"`
	}
	if err := resp.Decode("user", &created); err != nil {
		return nil, fmt.Errorf("register response: %w", err)
	}
	avatar := created.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}

	user := types.User{
		ID:       created.ID,
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Avatar:   avatar,
		Bio:      defaultBio,
		Role:     "student",
		Password: encoded,
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()
	c.persistUser(&user)

	slog.Info("registered", slog.String("user_id", string(user.ID)))
	return c.CurrentUser(), nil
}

// UpdateProfile saves the settings form. A password change requires all
// three password fields and the current one must match the stored copy. The
// backend's returned user object wins when present; otherwise the local
// copy is merged.
func (c *Client) UpdateProfile(ctx context.Context, req types.ProfileUpdate) (*types.User, error) {
	current := c.CurrentUser()
	if current == nil {
		return nil, ErrNotLoggedIn
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	passwordToSave := current.Password
	if req.CurrentPassword != "" || req.NewPassword != "" || req.ConfirmPassword != "" {
		if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
			return nil, fmt.Errorf("all password fields are required to change the password")
		}
		if req.CurrentPassword != password.Decode(current.Password) {
			return nil, fmt.Errorf("current password is incorrect")
		}
		if req.NewPassword != req.ConfirmPassword {
			return nil, fmt.Errorf("new passwords do not match")
		}
		passwordToSave = password.Encode(req.NewPassword)
	}

	resp, err := c.gw.Call(ctx, "updateProfile", map[string]any{
		"user_id":    current.ID,
		"name":       req.Name,
		"username":   req.Username,
		"email":      req.Email,
		"bio":        req.Bio,
		"avatar":     req.Avatar,
		"department": req.Department,
		"password":   passwordToSave,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("update failed: %s", resp.Message())
	}

	updated := *current
	if err := resp.Decode("user", &updated); err != nil {
		// backend did not echo the user; merge locally
		updated.Name = req.Name
		updated.Username = req.Username
		updated.Email = req.Email
		updated.Bio = req.Bio
		updated.Avatar = req.Avatar
		updated.Department = req.Department
	}
	updated.Password = passwordToSave

	c.mu.Lock()
	c.user = &updated
	c.mu.Unlock()
	c.persistUser(&updated)

	return c.CurrentUser(), nil
}

// Logout drops the active session and its persisted copy. The activity log
// dies with the process either way.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.user = nil
	c.activity = nil
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
