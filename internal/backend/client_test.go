package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExchangeTokenForwardsPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			t.Errorf("path = %q, want /oauth/token", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"access_token":"tok","token_type":"bearer"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.ExchangeToken(context.Background(), "abc", "http://localhost:3000/auth/callback")
	if err != nil {
		t.Fatalf("ExchangeToken returned error: %v", err)
	}

	if got["code"] != "abc" || got["redirect_uri"] != "http://localhost:3000/auth/callback" {
		t.Errorf("forwarded payload = %v", got)
	}
	if !resp.OK() {
		t.Errorf("status = %d, want 2xx", resp.StatusCode)
	}

	token, err := resp.AccessToken()
	if err != nil {
		t.Fatalf("AccessToken returned error: %v", err)
	}
	if token != "tok" {
		t.Errorf("token = %q, want tok", token)
	}
}

func TestExchangeTokenPassesErrorsThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail":"bad verification code"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.ExchangeToken(context.Background(), "bad", "uri")
	if err != nil {
		t.Fatalf("transport error: %v", err)
	}

	if resp.OK() {
		t.Error("expected non-2xx response")
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if got := resp.ErrorMessage("fallback"); got != "bad verification code" {
		t.Errorf("error message = %q", got)
	}
}

func TestResponseErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail preferred", `{"detail":"d","error":"e"}`, "d"},
		{"error used when no detail", `{"error":"e"}`, "e"},
		{"fallback on junk", `not json`, "fallback"},
		{"fallback on empty object", `{}`, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: 500, Body: []byte(tt.body)}
			if got := resp.ErrorMessage("fallback"); got != tt.want {
				t.Errorf("ErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAccessTokenErrors(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte(`{"token_type":"bearer"}`)}
	if _, err := resp.AccessToken(); err == nil {
		t.Error("expected error for response without access_token")
	}

	resp = &Response{StatusCode: 200, Body: []byte(`not json`)}
	if _, err := resp.AccessToken(); err == nil {
		t.Error("expected error for unparseable response")
	}
}

func TestCreateIssueAttachesToken(t *testing.T) {
	var got IssueRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-issue" {
			t.Errorf("path = %q, want /create-issue", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number":42,"title":"Bug"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.CreateIssue(context.Background(), IssueRequest{
		Repo:        "owner/repo",
		Title:       "Bug",
		Body:        "",
		AccessToken: "tok",
	})
	if err != nil {
		t.Fatalf("CreateIssue returned error: %v", err)
	}

	if got.AccessToken != "tok" {
		t.Error("access token must be forwarded to the backend")
	}
	if got.Repo != "owner/repo" || got.Title != "Bug" {
		t.Errorf("forwarded issue = %+v", got)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"GitHub OAuth API is running"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	if !resp.OK() {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
