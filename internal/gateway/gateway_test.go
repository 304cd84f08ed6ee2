package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seedcampus/seed-client/internal/config"
	"github.com/seedcampus/seed-client/internal/types"
)

func newTestGateway(url, token string) *Gateway {
	return New(&config.Config{
		Gateway: config.Gateway{URL: url, AuthToken: token},
	})
}

func TestCallEncodesAction(t *testing.T) {
	var got map[string]any
	var header http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL, "")
	resp, err := gw.Call(context.Background(), "likePost", map[string]any{
		"post_id": "7",
		"user_id": "u1",
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !resp.OK() {
		t.Fatal("expected success")
	}

	if got["action"] != "likePost" || got["post_id"] != "7" || got["user_id"] != "u1" {
		t.Fatalf("wrong request body: %v", got)
	}
	if header.Get("Content-Type") != "application/json" {
		t.Fatalf("content type: %q", header.Get("Content-Type"))
	}
	if header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
	if header.Get("Authorization") != "" {
		t.Fatalf("unexpected auth header: %q", header.Get("Authorization"))
	}
}

func TestCallAuthToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL, "sekrit")
	if _, err := gw.Call(context.Background(), "getPosts", nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	if auth != "Bearer sekrit" {
		t.Fatalf("auth header: %q", auth)
	}
}

func TestCallRejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Already liked",
		})
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL, "")
	resp, err := gw.Call(context.Background(), "likePost", nil)
	if err != nil {
		t.Fatalf("business failures must resolve, got %v", err)
	}
	if resp.OK() {
		t.Fatal("expected success=false")
	}
	if resp.Message() != "Already liked" {
		t.Fatalf("message: %q", resp.Message())
	}
}

func TestCallNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	gw := newTestGateway(srv.URL, "")
	if _, err := gw.Call(context.Background(), "getPosts", nil); err == nil {
		t.Fatal("expected a decode error for a non-JSON body")
	}
}

func TestCallTransportError(t *testing.T) {
	gw := newTestGateway("http://127.0.0.1:0", "")
	if _, err := gw.Call(context.Background(), "getPosts", nil); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestResponseInt(t *testing.T) {
	r := Response{
		"float":  float64(42),
		"string": "17",
		"junk":   "lots",
	}
	if r.Int("float") != 42 || r.Int("string") != 17 {
		t.Fatalf("numeric reads failed: %v %v", r.Int("float"), r.Int("string"))
	}
	if r.Int("junk") != 0 || r.Int("missing") != 0 {
		t.Fatal("bad values should read as zero")
	}
}

func TestResponseDecode(t *testing.T) {
	var r Response
	body := `{"success": true, "posts": [{"id": 1, "content": "hi", "likes": "3"}]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var posts []types.Post
	if err := r.Decode("posts", &posts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "1" || posts[0].Likes != 3 {
		t.Fatalf("decoded wrong posts: %+v", posts)
	}

	if err := r.Decode("missing", &posts); err == nil {
		t.Fatal("expected an error for a missing field")
	}
}
