//go:build e2e && unix

package main

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeNYT serves the two Books API endpoints the app calls
type fakeNYT struct {
	*httptest.Server
	namesStatus atomic.Int32
	namesHits   atomic.Int32
}

var fakeCategories = []struct{ key, name string }{
	{"combined-print-and-e-book-fiction", "Combined Print & E-Book Fiction"},
	{"hardcover-fiction", "Hardcover Fiction"},
	{"hardcover-nonfiction", "Hardcover Nonfiction"},
	{"paperback-nonfiction", "Paperback Nonfiction"},
	{"science", "Science"},
	{"travel", "Travel"},
}

func newFakeNYT(t *testing.T) *fakeNYT {
	t.Helper()
	f := &fakeNYT{}
	f.namesStatus.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/lists/names.json", func(w http.ResponseWriter, r *http.Request) {
		f.namesHits.Add(1)
		status := int(f.namesStatus.Load())
		w.WriteHeader(status)
		if status != http.StatusOK {
			fmt.Fprint(w, `{"fault": {"faultstring": "Invalid ApiKey"}}`)
			return
		}
		fmt.Fprint(w, namesJSON())
	})
	mux.HandleFunc("/lists/current/", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/lists/current/"), ".json")
		fmt.Fprint(w, listJSON(key))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func namesJSON() string {
	parts := make([]string, 0, len(fakeCategories))
	for _, c := range fakeCategories {
		parts = append(parts, fmt.Sprintf(
			`{"list_name": %q, "display_name": %q, "list_name_encoded": %q, "oldest_published_date": "2008-06-08", "newest_published_date": "2016-03-20", "updated": "WEEKLY"}`,
			c.name, c.name, c.key))
	}
	return fmt.Sprintf(`{"status": "OK", "num_results": %d, "results": [%s]}`, len(parts), strings.Join(parts, ","))
}

func listJSON(key string) string {
	name := key
	for _, c := range fakeCategories {
		if c.key == key {
			name = c.name
		}
	}
	return fmt.Sprintf(`{"status": "OK", "num_results": 1, "results": {
  "list_name": %q, "list_name_encoded": %q, "display_name": %q, "updated": "WEEKLY", "published_date": "2016-03-20",
  "books": [{"rank": 1, "weeks_on_list": 4, "publisher": "Crown", "description": "A test book.", "title": "THE TEST BOOK", "author": "Ada Example", "primary_isbn13": "9780000000001"}]
}}`, name, key, name)
}

// closedAddress returns a local address nothing listens on
func closedAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

// CreateWorkspace creates the isolated $HOME for one app run
func (tf *TUITestFramework) CreateWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "bookshelf-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir
	return dir, nil
}

// WriteConfig writes a config pointing at baseURL. probeAddress may be
// empty to probe the API host itself.
func (tf *TUITestFramework) WriteConfig(baseURL, probeAddress string) error {
	if tf.workspace == "" {
		if _, err := tf.CreateWorkspace(); err != nil {
			return err
		}
	}
	body := fmt.Sprintf(`[api]
base_url = %q
key = "e2e"
timeout = "2s"

[reachability]
probe_address = %q
interval = "200ms"
dial_timeout = "200ms"

[log]
file = %q
`, baseURL, probeAddress, filepath.Join(tf.workspace, "bookshelf.log"))

	tf.config = filepath.Join(tf.workspace, "config.toml")
	return os.WriteFile(tf.config, []byte(body), 0o600)
}
