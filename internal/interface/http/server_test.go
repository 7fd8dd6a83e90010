package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/application/command"
	"github.com/studyhall/studyhall/internal/application/query"
	"github.com/studyhall/studyhall/internal/infrastructure/persistence/memory"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	blocks := memory.NewScheduleRepository()
	assignments := memory.NewAssignmentRepository()
	exams := memory.NewExamRepository()
	todos := memory.NewTodoRepository()
	modules := memory.NewSyllabusRepository()

	cfg := DefaultConfig()
	cfg.EnableCORS = false
	cfg.RateLimitPerMinute = 0

	return NewServer(cfg, Dependencies{
		ScheduleCommands: command.NewScheduleCommands(blocks, nil, nil),
		DeadlineCommands: command.NewDeadlineCommands(assignments, exams, nil, nil),
		TodoCommands:     command.NewTodoCommands(todos, nil, nil),
		SyllabusCommands: command.NewSyllabusCommands(modules, nil, nil),
		AgendaQueries:    query.NewAgendaQueries(blocks, assignments, exams, todos, nil, nil),
		SyllabusQueries:  query.NewSyllabusQueries(modules),
		DeadlineQueries:  query.NewDeadlineQueries(assignments, exams),
		Lists: ListProviders{
			Blocks:      blocks,
			Assignments: assignments,
			Exams:       exams,
			Todos:       todos,
		},
	})
}

func doRequest(t *testing.T, s *Server, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) JSONResponse {
	t.Helper()
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestMissingUserHeaderIsRejected(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/schedule", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "missing_user", resp.Error.Code)
}

func TestScheduleCRUDRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/schedule", "u1", command.BlockInput{
		Title: "Algorithms", Kind: "lecture", Day: "Monday",
		StartTime: "09:00", EndTime: "10:30", Location: "Room 4",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeResponse(t, rec)
	created, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	blockID, _ := created["ID"].(string)
	require.NotEmpty(t, blockID)

	rec = doRequest(t, s, http.MethodGet, "/api/v1/schedule", "u1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Algorithms")

	// Another user cannot see or delete it.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/schedule", "u2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Algorithms")

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/schedule/"+blockID, "u2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/schedule/"+blockID, "u1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateBlockValidationError(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/schedule", "u1", command.BlockInput{
		Title: "Algorithms", Kind: "lecture", Day: "someday",
		StartTime: "09:00", EndTime: "10:30",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Code)
}

func TestQuickAddAndDayAgenda(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/todos/quick-add", "u1",
		map[string]string{"text": "Buy milk today p1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	today := timeutil.DateKey(time.Now().UTC())
	rec = doRequest(t, s, http.MethodGet, "/api/v1/agenda/day?date="+today, "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Buy milk")
}

func TestDayAgendaRejectsBadDate(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/agenda/day?date=tomorrow", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvanceModuleEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/syllabus", "u1", command.ModuleInput{
		Title: "Graphs", Course: "Algorithms", Topics: []string{"BFS", "DFS"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeResponse(t, rec)
	created, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	moduleID, _ := created["ID"].(string)
	require.NotEmpty(t, moduleID)

	rec = doRequest(t, s, http.MethodPost, fmt.Sprintf("/api/v1/syllabus/%s/advance", moduleID), "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "InProgress")
}

func TestCalendarExport(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/exams", "u1", command.ExamInput{
		Title: "Final", Course: "Math", Date: "2030-06-12T09:00", Location: "Hall B",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/v1/calendar.ics", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Contains(t, body, "Exam: Final")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
