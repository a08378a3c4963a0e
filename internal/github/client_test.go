package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeContents serves a minimal contents API backed by an in-memory map.
type fakeContents struct {
	files map[string]string // path -> content
	puts  []putRequest
}

func (f *fakeContents) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Unexpected auth header: %q", got)
		}

		path := strings.TrimPrefix(r.URL.Path, "/repos/smartfinancehub/site/contents/")

		switch r.Method {
		case "GET":
			content, ok := f.files[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(contentsResponse{
				Path:     path,
				SHA:      "sha-" + path,
				Content:  base64.StdEncoding.EncodeToString([]byte(content)),
				Encoding: "base64",
			})
		case "PUT":
			var req putRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("Bad PUT body: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.puts = append(f.puts, req)
			decoded, _ := base64.StdEncoding.DecodeString(req.Content)
			_, existed := f.files[path]
			f.files[path] = string(decoded)
			if existed {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusCreated)
			}
			json.NewEncoder(w).Encode(map[string]string{"path": path})
		case "DELETE":
			var req deleteRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SHA == "" {
				w.WriteHeader(http.StatusConflict)
				return
			}
			delete(f.files, path)
			json.NewEncoder(w).Encode(map[string]string{"path": path})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func newTestClient(t *testing.T, f *fakeContents) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(f.handler(t))
	t.Cleanup(server.Close)
	return NewClientWithBaseURL("test-token", "smartfinancehub", "site", "main", server.URL), server
}

func TestGetFile(t *testing.T) {
	f := &fakeContents{files: map[string]string{"index.html": "<html>home</html>"}}
	client, _ := newTestClient(t, f)

	file, err := client.GetFile(context.Background(), "index.html")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if file == nil {
		t.Fatal("Expected file, got nil")
	}
	if string(file.Content) != "<html>home</html>" {
		t.Errorf("Unexpected content: %q", file.Content)
	}
	if file.SHA != "sha-index.html" {
		t.Errorf("Unexpected SHA: %q", file.SHA)
	}
}

func TestGetFileMissing(t *testing.T) {
	client, _ := newTestClient(t, &fakeContents{files: map[string]string{}})

	file, err := client.GetFile(context.Background(), "missing.html")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if file != nil {
		t.Errorf("Expected nil for missing file, got %+v", file)
	}
}

func TestPutFileCreatesWithoutSHA(t *testing.T) {
	f := &fakeContents{files: map[string]string{}}
	client, _ := newTestClient(t, f)

	err := client.PutFile(context.Background(), "articles/index.html", "Publish article listing", []byte("<html>list</html>"))
	if err != nil {
		t.Fatalf("PutFile failed: %v", err)
	}

	if len(f.puts) != 1 {
		t.Fatalf("Expected 1 PUT, got %d", len(f.puts))
	}
	if f.puts[0].SHA != "" {
		t.Errorf("Create must not carry a SHA, got %q", f.puts[0].SHA)
	}
	if f.puts[0].Branch != "main" {
		t.Errorf("Expected branch main, got %q", f.puts[0].Branch)
	}
	if f.files["articles/index.html"] != "<html>list</html>" {
		t.Error("File was not stored")
	}
}

func TestPutFileUpdatesWithSHA(t *testing.T) {
	f := &fakeContents{files: map[string]string{"index.html": "old"}}
	client, _ := newTestClient(t, f)

	err := client.PutFile(context.Background(), "index.html", "Regenerate homepage", []byte("new"))
	if err != nil {
		t.Fatalf("PutFile failed: %v", err)
	}

	if len(f.puts) != 1 {
		t.Fatalf("Expected 1 PUT, got %d", len(f.puts))
	}
	if f.puts[0].SHA != "sha-index.html" {
		t.Errorf("Update must carry the existing SHA, got %q", f.puts[0].SHA)
	}
	if f.files["index.html"] != "new" {
		t.Error("File was not updated")
	}
}

func TestDeleteFile(t *testing.T) {
	f := &fakeContents{files: map[string]string{"old.html": "stale"}}
	client, _ := newTestClient(t, f)

	if err := client.DeleteFile(context.Background(), "old.html", "Remove archived article"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if _, ok := f.files["old.html"]; ok {
		t.Error("File was not deleted")
	}

	// Deleting again is a no-op.
	if err := client.DeleteFile(context.Background(), "old.html", "Remove archived article"); err != nil {
		t.Errorf("Deleting a missing file must not error: %v", err)
	}
}
