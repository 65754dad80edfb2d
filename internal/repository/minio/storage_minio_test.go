package minio

import "testing"

func TestObjectURL(t *testing.T) {
	got := ObjectURL("https://cdn.example.com", "profiles", "/accounts/abc.jpg")
	if got != "https://cdn.example.com/profiles/accounts/abc.jpg" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestNewStorageFallsBackToEndpoint(t *testing.T) {
	client, err := NewClient("localhost:9000", "key", "secret", false)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	s := NewStorage(client, "")
	if s.publicURL != "http://localhost:9000" {
		t.Fatalf("unexpected public url %s", s.publicURL)
	}
}
