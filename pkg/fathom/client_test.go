package fathom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omniscope-hq/meeting-intel/pkg/config"
)

func TestListMeetings_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/external/v1/meetings" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Fatalf("unexpected api key header %q", got)
		}
		q := r.URL.Query()
		if q.Get("limit") != "5" || q.Get("include_transcript") != "true" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("cursor") != "cursor-1" {
			t.Fatalf("expected cursor-1, got %q", q.Get("cursor"))
		}

		json.NewEncoder(w).Encode(ListMeetingsResponse{
			Items: []RawRecordingPayload{
				{Title: "Hassan x Jake", RecordingID: "rec-1"},
			},
			NextCursor: "cursor-2",
		})
	}))
	defer ts.Close()

	client := NewClient(&config.FathomConfig{APIKey: "test-key", BaseURL: ts.URL})

	page, err := client.ListMeetings(context.Background(), 5, "cursor-1")
	if err != nil {
		t.Fatalf("ListMeetings failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].RecordingID != "rec-1" {
		t.Errorf("unexpected items %+v", page.Items)
	}
	if page.NextCursor != "cursor-2" {
		t.Errorf("unexpected cursor %q", page.NextCursor)
	}
}

func TestListMeetings_UnauthorizedIsNotRetried(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(&config.FathomConfig{APIKey: "bad-key", BaseURL: ts.URL})

	if _, err := client.ListMeetings(context.Background(), 5, ""); err == nil {
		t.Fatal("expected error on 401")
	}
	if calls != 1 {
		t.Errorf("credential rejection must not be retried, got %d calls", calls)
	}
}

func TestListMeetings_RequiresAPIKey(t *testing.T) {
	client := NewClient(&config.FathomConfig{})

	if _, err := client.ListMeetings(context.Background(), 5, ""); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestRegisterWebhook(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/external/v1/webhooks" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["destination_url"] != "https://intel.example.com/api/webhook/fathom" {
			t.Fatalf("unexpected destination %v", body["destination_url"])
		}
		if body["include_transcript"] != true || body["include_action_items"] != true {
			t.Fatalf("expected full payload opts, got %v", body)
		}

		json.NewEncoder(w).Encode(WebhookRegistration{
			ID:            "wh-1",
			URL:           "https://intel.example.com/api/webhook/fathom",
			WebhookSecret: "secret",
		})
	}))
	defer ts.Close()

	client := NewClient(&config.FathomConfig{APIKey: "test-key", BaseURL: ts.URL})

	reg, err := client.RegisterWebhook(context.Background(), "https://intel.example.com/api/webhook/fathom")
	if err != nil {
		t.Fatalf("RegisterWebhook failed: %v", err)
	}
	if reg.ID != "wh-1" || reg.WebhookSecret != "secret" {
		t.Errorf("unexpected registration %+v", reg)
	}
}

func TestBestTitle(t *testing.T) {
	p := &RawRecordingPayload{MeetingTitle: "Fallback"}
	if got := p.BestTitle(); got != "Fallback" {
		t.Errorf("BestTitle = %q", got)
	}
	p.Title = "Primary"
	if got := p.BestTitle(); got != "Primary" {
		t.Errorf("BestTitle = %q", got)
	}
}
