package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"name":"2023-01-01_cluster-abc"},{"name":"2023-01-02_cluster-def"}]`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	failures, err := c.ListFailures(context.Background())
	if err != nil {
		t.Fatalf("ListFailures() error = %v", err)
	}
	if len(failures) != 2 || failures[0].Name != "2023-01-01_cluster-abc" {
		t.Errorf("failures = %v", failures)
	}
}

func TestListFailuresServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.ListFailures(context.Background()); err == nil {
		t.Error("ListFailures() expected error for 500 response")
	}
}

func TestClusterMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/2023-01-01_cluster-abc/metadata.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"cluster":{"id":"abc","user_name":"alice","email_domain":"redhat.com","openshift_version":"4.12.3","status":"error"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	cluster, err := c.ClusterMetadata(context.Background(), "2023-01-01_cluster-abc")
	if err != nil {
		t.Fatalf("ClusterMetadata() error = %v", err)
	}
	if cluster.ID != "abc" || cluster.Status != "error" || cluster.OpenshiftVersion != "4.12.3" {
		t.Errorf("cluster = %+v", cluster)
	}
}

func TestClusterMetadataNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.ClusterMetadata(context.Background(), "missing"); err == nil {
		t.Error("ClusterMetadata() expected error for 404 response")
	}
}

func TestLogsURL(t *testing.T) {
	c := NewClient("http://collector.example.com/")
	want := "http://collector.example.com/files/2023-01-01_cluster-abc"
	if got := c.LogsURL("2023-01-01_cluster-abc"); got != want {
		t.Errorf("LogsURL() = %s, want %s", got, want)
	}
}
