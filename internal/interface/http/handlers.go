package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/studyhall/studyhall/internal/application/command"
	"github.com/studyhall/studyhall/internal/domain/deadline"
	"github.com/studyhall/studyhall/internal/domain/schedule"
	"github.com/studyhall/studyhall/internal/domain/syllabus"
	"github.com/studyhall/studyhall/internal/domain/task"
	"github.com/studyhall/studyhall/pkg/logger"
	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ListProviders holds the repositories backing the plain list endpoints.
// Listing needs no derivation, so the handlers read the collections directly.
type ListProviders struct {
	Blocks      schedule.Repository
	Assignments deadline.AssignmentRepository
	Exams       deadline.ExamRepository
	Todos       task.Repository
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// userID extracts the acting user from the X-User-ID header. Authentication
// happens upstream; this service only scopes data by the identity it is given.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return "", false
	}
	return id, true
}

// decodeJSON decodes the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return false
	}
	return true
}

// getQueryParam returns a query parameter or a default.
func getQueryParam(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

// getQueryParamInt returns an integer query parameter or a default.
func getQueryParamInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// writeDomainError maps a domain error to an HTTP status and writes it.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case isConflict(err):
		writeJSONError(w, http.StatusConflict, "already_exists", err.Error())
	case isValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", getRequestID(r.Context())),
			logger.Err(err),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, schedule.ErrBlockNotFound) ||
		errors.Is(err, deadline.ErrAssignmentNotFound) ||
		errors.Is(err, deadline.ErrExamNotFound) ||
		errors.Is(err, task.ErrTodoNotFound) ||
		errors.Is(err, syllabus.ErrModuleNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, schedule.ErrBlockAlreadyExists) ||
		errors.Is(err, deadline.ErrAlreadyExists) ||
		errors.Is(err, task.ErrTodoAlreadyExists) ||
		errors.Is(err, syllabus.ErrModuleAlreadyExists)
}

func isValidation(err error) bool {
	return errors.Is(err, schedule.ErrInvalidKind) ||
		errors.Is(err, schedule.ErrInvalidRecurrence) ||
		errors.Is(err, schedule.ErrInvalidClock) ||
		errors.Is(err, schedule.ErrInvalidTitle) ||
		errors.Is(err, deadline.ErrInvalidDueDate) ||
		errors.Is(err, deadline.ErrInvalidPriority) ||
		errors.Is(err, deadline.ErrInvalidStatus) ||
		errors.Is(err, deadline.ErrInvalidTitle) ||
		errors.Is(err, task.ErrEmptyText) ||
		errors.Is(err, task.ErrInvalidPriority) ||
		errors.Is(err, task.ErrInvalidDueDate) ||
		errors.Is(err, syllabus.ErrInvalidTitle) ||
		errors.Is(err, syllabus.ErrInvalidStrength)
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": s.Uptime().String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	ready := true

	if s.deps.PingDB != nil {
		if err := s.deps.PingDB(r.Context()); err != nil {
			checks["database"] = err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}
	if s.deps.PingCache != nil {
		if err := s.deps.PingCache(r.Context()); err != nil {
			checks["cache"] = err.Error()
			ready = false
		} else {
			checks["cache"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{"ready": ready, "checks": checks})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not_found", "Resource not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "studyhall",
		"version": "v1",
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// AGENDA VIEWS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetDayAgenda(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	date, err := timeutil.ParseDate(getQueryParam(r, "date", timeutil.DateKey(now)))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_date", "date must be yyyy-MM-dd")
		return
	}

	day, err := s.deps.AgendaQueries.GetDayAgenda(r.Context(), userID, date, now)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleGetMonthAgenda(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	month := getQueryParam(r, "month", time.Now().UTC().Format("2006-01"))

	view, err := s.deps.AgendaQueries.GetMonthAgenda(r.Context(), userID, month)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_month", "month must be yyyy-MM")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetUpcomingDeadlines(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	days := getQueryParamInt(r, "days", 7)
	if days < 1 || days > 90 {
		writeJSONError(w, http.StatusBadRequest, "invalid_days", "days must be between 1 and 90")
		return
	}

	upcoming, err := s.deps.DeadlineQueries.GetUpcoming(r.Context(), userID, time.Now().UTC(), days)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"days": days, "deadlines": upcoming})
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE BLOCKS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	blocks, err := s.deps.Lists.Blocks.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.BlockInput
	if !decodeJSON(w, r, &input) {
		return
	}

	block, err := s.deps.ScheduleCommands.Create(r.Context(), userID, input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, block)
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.BlockInput
	if !decodeJSON(w, r, &input) {
		return
	}

	block, err := s.deps.ScheduleCommands.Update(r.Context(), userID, r.PathValue("id"), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, block)
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.deps.ScheduleCommands.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGNMENTS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	assignments, err := s.deps.Lists.Assignments.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.AssignmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	assignment, err := s.deps.DeadlineCommands.CreateAssignment(r.Context(), userID, input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.AssignmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	assignment, err := s.deps.DeadlineCommands.UpdateAssignment(r.Context(), userID, r.PathValue("id"), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.deps.DeadlineCommands.DeleteAssignment(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ══════════════════════════════════════════════════════════════════════════════
// EXAMS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	exams, err := s.deps.Lists.Exams.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exams)
}

func (s *Server) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.ExamInput
	if !decodeJSON(w, r, &input) {
		return
	}

	exam, err := s.deps.DeadlineCommands.CreateExam(r.Context(), userID, input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, exam)
}

func (s *Server) handleUpdateExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.ExamInput
	if !decodeJSON(w, r, &input) {
		return
	}

	exam, err := s.deps.DeadlineCommands.UpdateExam(r.Context(), userID, r.PathValue("id"), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (s *Server) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.deps.DeadlineCommands.DeleteExam(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ══════════════════════════════════════════════════════════════════════════════
// TODOS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	todos, err := s.deps.Lists.Todos.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.TodoInput
	if !decodeJSON(w, r, &input) {
		return
	}

	todo, err := s.deps.TodoCommands.Create(r.Context(), userID, input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleQuickAddTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	todo, err := s.deps.TodoCommands.QuickAdd(r.Context(), userID, input.Text, time.Now().UTC())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	todo, err := s.deps.TodoCommands.Toggle(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.TodoInput
	if !decodeJSON(w, r, &input) {
		return
	}

	todo, err := s.deps.TodoCommands.Update(r.Context(), userID, r.PathValue("id"), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.deps.TodoCommands.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ══════════════════════════════════════════════════════════════════════════════
// SYLLABUS MODULES
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetSyllabusOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	overview, err := s.deps.SyllabusQueries.GetOverview(r.Context(), userID, time.Now().UTC())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleCreateModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.ModuleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	module, err := s.deps.SyllabusCommands.Create(r.Context(), userID, input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, module)
}

func (s *Server) handleAdvanceModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	module, err := s.deps.SyllabusCommands.Advance(r.Context(), userID, r.PathValue("id"), time.Now().UTC())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, module)
}

func (s *Server) handleUpdateModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var input command.ModuleInput
	if !decodeJSON(w, r, &input) {
		return
	}

	module, err := s.deps.SyllabusCommands.Update(r.Context(), userID, r.PathValue("id"), input)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, module)
}

func (s *Server) handleDeleteModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.deps.SyllabusCommands.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
