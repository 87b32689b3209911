package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/model"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

type mockShiftService struct {
	start, end string
}

func (m *mockShiftService) GetShifts(ctx context.Context, start, end string) ([]*model.ShiftView, error) {
	m.start, m.end = start, end
	return []*model.ShiftView{
		{Shift: model.Shift{ID: "s1", Date: start, ShiftRole: model.ShiftRoleSeniorResident}},
	}, nil
}

func TestGetShifts(t *testing.T) {
	svc := &mockShiftService{}
	h := NewShiftHandler(svc, logger.Discard())
	h.now = func() time.Time { return time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC) }
	router := httprouter.New()
	h.RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shifts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.start != "2026-04-01" || svc.end != "2026-04-30" {
		t.Errorf("default range = %s..%s", svc.start, svc.end)
	}

	var resp struct {
		Data []struct {
			ID     string          `json:"id"`
			Doctor json.RawMessage `json:"doctor"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || string(resp.Data[0].Doctor) != "null" {
		t.Errorf("expected unassigned shift with null doctor, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shifts?start=2026-05-01", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for half range, got %d", w.Code)
	}
}
