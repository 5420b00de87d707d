package fiber_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	analyticsdomain "kb-analytics-service/internal/analytics/core/domain"
	httpadapter "kb-analytics-service/internal/qalogs/adapters/http/fiber"
	"kb-analytics-service/internal/qalogs/core/domain"
	"kb-analytics-service/internal/qalogs/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type fakeRecordUC struct {
	ExecuteFn func(ctx context.Context, in usecase.RecordQaLogInput) (*domain.QaLog, error)
	lastInput usecase.RecordQaLogInput
}

func (f *fakeRecordUC) Execute(ctx context.Context, in usecase.RecordQaLogInput) (*domain.QaLog, error) {
	f.lastInput = in
	return f.ExecuteFn(ctx, in)
}

type fakeListUC struct {
	ExecuteFn func(ctx context.Context, orgID int64) ([]analyticsdomain.QaRow, error)
	called    bool
	lastOrgID int64
}

func (f *fakeListUC) Execute(ctx context.Context, orgID int64) ([]analyticsdomain.QaRow, error) {
	f.called = true
	f.lastOrgID = orgID
	if f.ExecuteFn != nil {
		return f.ExecuteFn(ctx, orgID)
	}
	return nil, nil
}

func setupApp(rec httpadapter.RecordQaLogUseCase, list httpadapter.ListQaLogsUseCase) *fiber.App {
	app := fiber.New()
	httpadapter.NewQaLogHandler(rec, list).Register(app)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

// ------------------------------------------------------------
// POST /qa-logs
// ------------------------------------------------------------

func TestCreateQaLog_Created(t *testing.T) {
	rec := &fakeRecordUC{
		ExecuteFn: func(ctx context.Context, in usecase.RecordQaLogInput) (*domain.QaLog, error) {
			return &domain.QaLog{ID: "id-1", CreatedAt: time.Date(2024, 1, 5, 14, 7, 0, 0, time.UTC)}, nil
		},
	}
	app := setupApp(rec, &fakeListUC{})

	resp, body := send(t, app, http.MethodPost, "/qa-logs", `{"question":"q","answer":"a","study_program":"law","org_id":2}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	if rec.lastInput.StudyProgram != "law" || rec.lastInput.OrgID != 2 {
		t.Fatalf("unexpected input %+v", rec.lastInput)
	}

	var got httpadapter.CreateQaLogResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "id-1" || got.CreatedAt != "2024-01-05T14:07:00Z" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestCreateQaLog_Invalid(t *testing.T) {
	rec := &fakeRecordUC{
		ExecuteFn: func(ctx context.Context, in usecase.RecordQaLogInput) (*domain.QaLog, error) {
			return nil, fmt.Errorf("%w: answer is a required field", usecase.ErrInvalidQaLog)
		},
	}
	app := setupApp(rec, &fakeListUC{})

	resp, _ := send(t, app, http.MethodPost, "/qa-logs", `{"question":"q"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateQaLog_InternalError(t *testing.T) {
	rec := &fakeRecordUC{
		ExecuteFn: func(ctx context.Context, in usecase.RecordQaLogInput) (*domain.QaLog, error) {
			return nil, errors.New("db down")
		},
	}
	app := setupApp(rec, &fakeListUC{})

	resp, _ := send(t, app, http.MethodPost, "/qa-logs", `{"question":"q","answer":"a"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

// ------------------------------------------------------------
// GET /qa-logs
// ------------------------------------------------------------

func TestListQaLogs(t *testing.T) {
	list := &fakeListUC{
		ExecuteFn: func(ctx context.Context, orgID int64) ([]analyticsdomain.QaRow, error) {
			return []analyticsdomain.QaRow{{ID: "b", Date: "05.01.2024, 15:07"}, {ID: "a", Date: "05.01.2024, 14:07"}}, nil
		},
	}
	app := setupApp(&fakeRecordUC{}, list)

	resp, body := send(t, app, http.MethodGet, "/qa-logs?org_id=9", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if list.lastOrgID != 9 {
		t.Fatalf("expected org 9, got %d", list.lastOrgID)
	}

	var got []httpadapter.QaLogResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestListQaLogs_EmptyIsArray(t *testing.T) {
	app := setupApp(&fakeRecordUC{}, &fakeListUC{})

	_, body := send(t, app, http.MethodGet, "/qa-logs", "")
	if string(body) != "[]" {
		t.Fatalf("expected [], got %s", body)
	}
}

func TestListQaLogs_BadOrgID(t *testing.T) {
	list := &fakeListUC{}
	app := setupApp(&fakeRecordUC{}, list)

	resp, _ := send(t, app, http.MethodGet, "/qa-logs?org_id=abc", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if list.called {
		t.Fatalf("use case must not be called")
	}
}
