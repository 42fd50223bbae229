package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apperrors "github.com/omniscope-hq/meeting-intel/errors"
	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/internal/usecase/intelligence"
	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

type fakeService struct {
	recordingResult    *intelligence.ProcessResult
	intelligenceResult *intelligence.ProcessResult
	err                error

	gotRecording *fathom.RawRecordingPayload
	gotSource    entities.SourceType
	gotData      *entities.IntelligenceData
	gotOrgID     string
}

func (f *fakeService) ProcessRecording(ctx context.Context, payload *fathom.RawRecordingPayload, source entities.SourceType, orgID string) (*intelligence.ProcessResult, error) {
	f.gotRecording = payload
	f.gotSource = source
	f.gotOrgID = orgID
	if f.err != nil {
		return nil, f.err
	}
	return f.recordingResult, nil
}

func (f *fakeService) ProcessIntelligence(ctx context.Context, data *entities.IntelligenceData, orgID string) (*intelligence.ProcessResult, error) {
	f.gotData = data
	f.gotOrgID = orgID
	if f.err != nil {
		return nil, f.err
	}
	return f.intelligenceResult, nil
}

func (f *fakeService) ImportFathomMeetings(ctx context.Context, opts intelligence.ImportOptions) (*intelligence.ImportResult, error) {
	return &intelligence.ImportResult{}, nil
}

func (f *fakeService) RegisterFathomWebhook(ctx context.Context, destinationURL string) (*fathom.WebhookRegistration, error) {
	return &fathom.WebhookRegistration{ID: "wh-1", URL: destinationURL}, nil
}

func postWebhook(h *WebhookHandler, path, body string, fn func(echo.Context) error) (*httptest.ResponseRecorder, map[string]interface{}) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = fn(c)

	var decoded map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func TestHandleUniversal_VendorPayload(t *testing.T) {
	svc := &fakeService{
		recordingResult: &intelligence.ProcessResult{Success: true, MeetingID: "m-1"},
	}
	h := NewWebhookHandler(svc, nil)

	body := `{"title": "Hassan x Jake", "share_url": "https://fathom.video/s/abc", "recorded_by": {"name": "Hassan"}}`
	rec, decoded := postWebhook(h, "/api/webhook/ingest", body, h.HandleUniversal)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if decoded["success"] != true {
		t.Errorf("expected success true, got %v", decoded["success"])
	}
	if decoded["meetingId"] != "m-1" {
		t.Errorf("expected meetingId m-1, got %v", decoded["meetingId"])
	}
	if decoded["source"] != "fathom" {
		t.Errorf("expected source fathom, got %v", decoded["source"])
	}
	if svc.gotRecording == nil || svc.gotRecording.Title != "Hassan x Jake" {
		t.Errorf("recording payload not forwarded: %+v", svc.gotRecording)
	}
}

func TestHandleUniversal_CanonicalPayload(t *testing.T) {
	svc := &fakeService{
		intelligenceResult: &intelligence.ProcessResult{Success: true, MeetingID: "m-2"},
	}
	h := NewWebhookHandler(svc, nil)

	body := `{"sourceId": "rec-1", "sourceType": "plaud", "meetingDate": "2026-03-01T10:00:00Z", "executiveSummary": "Summary."}`
	rec, decoded := postWebhook(h, "/api/webhook/ingest", body, h.HandleUniversal)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if decoded["meetingId"] != "m-2" {
		t.Errorf("expected meetingId m-2, got %v", decoded["meetingId"])
	}
	if svc.gotData == nil || svc.gotData.SourceID != "rec-1" {
		t.Errorf("canonical payload not forwarded: %+v", svc.gotData)
	}
}

func TestHandleUniversal_UnrecognizedPayload(t *testing.T) {
	h := NewWebhookHandler(&fakeService{}, nil)

	rec, decoded := postWebhook(h, "/api/webhook/ingest", `{"foo": "bar"}`, h.HandleUniversal)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if decoded["success"] != false {
		t.Errorf("expected success false, got %v", decoded["success"])
	}
	if decoded["error"] != "Unrecognized webhook payload format" {
		t.Errorf("unexpected error message: %v", decoded["error"])
	}
}

func TestHandleUniversal_MalformedJSON(t *testing.T) {
	h := NewWebhookHandler(&fakeService{}, nil)

	rec, _ := postWebhook(h, "/api/webhook/ingest", `{not json`, h.HandleUniversal)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestHandleUniversal_DuplicateIsOK(t *testing.T) {
	svc := &fakeService{
		recordingResult: &intelligence.ProcessResult{Success: false, MeetingID: "m-1", Reason: "duplicate"},
	}
	h := NewWebhookHandler(svc, nil)

	body := `{"title": "Hassan x Jake", "share_url": "https://fathom.video/s/abc"}`
	rec, decoded := postWebhook(h, "/api/webhook/ingest", body, h.HandleUniversal)

	// Senders retry on non-2xx, so a duplicate must not look like a failure.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if decoded["success"] != false || decoded["reason"] != "duplicate" {
		t.Errorf("unexpected duplicate response: %v", decoded)
	}
}

func TestHandleUniversal_ValidationErrorIs400(t *testing.T) {
	svc := &fakeService{err: apperrors.ErrMissingFields("meetingDate")}
	h := NewWebhookHandler(svc, nil)

	body := `{"title": "Sync", "share_url": "https://fathom.video/s/abc"}`
	rec, decoded := postWebhook(h, "/api/webhook/ingest", body, h.HandleUniversal)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if decoded["success"] != false {
		t.Errorf("expected success false, got %v", decoded["success"])
	}
}

func TestHandleUniversal_InternalErrorIsGeneric(t *testing.T) {
	svc := &fakeService{err: apperrors.ErrDBQueryFailed("create meeting", context.DeadlineExceeded)}
	h := NewWebhookHandler(svc, nil)

	body := `{"title": "Sync", "share_url": "https://fathom.video/s/abc"}`
	rec, decoded := postWebhook(h, "/api/webhook/ingest", body, h.HandleUniversal)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	if decoded["error"] != "Internal server error" {
		t.Errorf("internal details must not leak: %v", decoded["error"])
	}
}

func TestHandlePlaud_SourceType(t *testing.T) {
	svc := &fakeService{
		recordingResult: &intelligence.ProcessResult{Success: true, MeetingID: "m-3"},
	}
	h := NewWebhookHandler(svc, nil)

	body := `{"title": "Voice memo", "share_url": "https://plaud.ai/r/abc"}`
	_, decoded := postWebhook(h, "/api/webhook/plaud", body, h.HandlePlaud)

	if svc.gotSource != entities.SourceTypePlaud {
		t.Errorf("expected plaud source, got %s", svc.gotSource)
	}
	if decoded["source"] != "plaud" {
		t.Errorf("expected source plaud in response, got %v", decoded["source"])
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewWebhookHandler(&fakeService{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/webhook/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.HandleHealth(c); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Errorf("expected status ok, got %v", decoded["status"])
	}
	webhooks, ok := decoded["webhooks"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected webhooks map, got %T", decoded["webhooks"])
	}
	for _, key := range []string{"universal", "fathom", "plaud"} {
		if webhooks[key] == "" || webhooks[key] == nil {
			t.Errorf("missing webhook route %q", key)
		}
	}
}
