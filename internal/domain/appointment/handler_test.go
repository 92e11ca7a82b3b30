package appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"patient_id":"` + uuid.New().String() + `","doctor_id":"` + uuid.New().String() +
		`","start_time":"2026-09-01T10:00:00Z","end_time":"2026-09-01T10:30:00Z","reason":"Initial consultation"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateInvalidKeepsCandidate(t *testing.T) {
	h, e := newTestHandler()
	body := `{"patient_id":"` + uuid.New().String() + `","doctor_id":"` + uuid.New().String() +
		`","start_time":"2026-09-01T10:30:00Z","end_time":"2026-09-01T10:00:00Z","reason":"Initial consultation"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp struct {
		Errors    map[string][]string `json:"errors"`
		Candidate Appointment         `json:"candidate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Errors["end_time"]) != 1 {
		t.Errorf("expected end_time failure, got %v", resp.Errors)
	}
	if resp.Candidate.Reason != "Initial consultation" {
		t.Errorf("expected submitted values echoed back, got %+v", resp.Candidate)
	}
}

func TestHandler_GetNotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.Get(c); err == nil {
		t.Error("expected error for not found")
	}
}

func TestHandler_GetInvalidID(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.Get(c); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestHandler_ListFilterByDoctor(t *testing.T) {
	h, e := newTestHandler()
	doctorID := uuid.New()

	for _, a := range []*Appointment{
		{PatientID: uuid.New(), DoctorID: doctorID, StartTime: at(9, 0), EndTime: at(9, 30), Reason: "Checkup"},
		{PatientID: uuid.New(), DoctorID: uuid.New(), StartTime: at(9, 0), EndTime: at(9, 30), Reason: "Checkup"},
	} {
		if out, err := h.svc.Create(nil, a); err != nil || !out.Ok() {
			t.Fatalf("seed create failed: out=%v err=%v", out, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/?doctor_id="+doctorID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 appointment for doctor, got %d", resp.Total)
	}
}
