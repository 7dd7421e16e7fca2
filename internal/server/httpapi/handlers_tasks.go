package httpapi

import (
	"net/http"
	"strconv"

	"github.com/AnandRajBind/Task-Management/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := Identity(r.Context())

	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := s.tasks.Create(r.Context(), identity.UserID, req.Title, req.Description, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Task created successfully", task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity, _ := Identity(r.Context())

	q := r.URL.Query()
	query := services.TaskQuery{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		query.Limit = limit
	}

	list, err := s.tasks.List(r.Context(), identity.UserID, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "", list)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := Identity(r.Context())

	task, err := s.tasks.Get(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "", task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := Identity(r.Context())

	var req updateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := s.tasks.Update(r.Context(), chi.URLParam(r, "id"), identity.UserID, services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Task updated successfully", task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := Identity(r.Context())

	if err := s.tasks.Delete(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Task deleted successfully", nil)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	identity, _ := Identity(r.Context())

	task, err := s.tasks.ToggleStatus(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "Task status toggled successfully", task)
}
