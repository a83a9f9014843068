package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"quiz-admin-service/internal/app"
	"quiz-admin-service/internal/domain"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth      *app.AuthService
	Questions *app.QuestionService
	Results   *app.ResultService
	Settings  *app.SettingsService
}

// Handler serves the REST API.
type Handler struct {
	services           Services
	logger             *slog.Logger
	exposeErrorDetails bool
}

func NewHandler(services Services, logger *slog.Logger, exposeErrorDetails bool) *Handler {
	return &Handler{
		services:           services,
		logger:             logger,
		exposeErrorDetails: exposeErrorDetails,
	}
}

type loginRequest struct {
	RegNumber string `json:"regNumber"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: "Invalid request body"})
		return
	}

	strategy, err := h.services.Auth.Login(r.Context(), req.RegNumber)
	if err != nil {
		status, message := classify(err, "Login failed")
		if status == http.StatusInternalServerError {
			h.logger.Error("login failed", "error", err)
		}
		writeJSON(w, status, loginResponse{Message: message})
		return
	}

	h.logger.Info("login accepted", "regNumber", req.RegNumber, "strategy", string(strategy))
	writeJSON(w, http.StatusOK, loginResponse{Success: true})
}

type checkResultResponse struct {
	HasResult      bool           `json:"hasResult"`
	ExistingResult *domain.Result `json:"existingResult"`
}

func (h *Handler) CheckResult(w http.ResponseWriter, r *http.Request) {
	reg := chi.URLParam(r, "regNumber")
	if unescaped, err := url.PathUnescape(reg); err == nil {
		reg = unescaped
	}
	result, ok, err := h.services.Auth.FindResult(r.Context(), reg)
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch result")
		return
	}
	resp := checkResultResponse{HasResult: ok}
	if ok {
		resp.ExistingResult = &result
	}
	writeJSON(w, http.StatusOK, resp)
}

type questionRequest struct {
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
}

// input converts the request; an unparseable correctAnswer is kept as null.
func (q questionRequest) input() domain.QuestionInput {
	in := domain.QuestionInput{
		Question:  q.Question,
		Options:   q.Options,
		HasAnswer: present(q.CorrectAnswer),
	}
	if v, ok := looseInt(q.CorrectAnswer); ok {
		in.CorrectAnswer = &v
	}
	return in
}

type questionResponse struct {
	Success  bool            `json:"success"`
	Question domain.Question `json:"question"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.services.Questions.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to load questions")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.services.Questions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "Failed to load question")
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing fields"})
		return
	}
	question, err := h.services.Questions.Create(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err, "Failed to save question")
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{Success: true, Question: question})
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing fields"})
		return
	}
	question, err := h.services.Questions.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.writeError(w, r, err, "Failed to update question")
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{Success: true, Question: question})
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Questions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, "Failed to delete question")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Question deleted"})
}

type resultRequest struct {
	RegNumber  string          `json:"regNumber"`
	FullName   string          `json:"fullName"`
	Score      json.RawMessage `json:"score"`
	Total      json.RawMessage `json:"total"`
	Department string          `json:"department"`
}

type saveResultResponse struct {
	Message  string `json:"message"`
	ResultID string `json:"resultId"`
}

func (h *Handler) SaveResult(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Incomplete result data"})
		return
	}

	in := domain.SubmitResult{
		RegNumber:  req.RegNumber,
		FullName:   req.FullName,
		Department: req.Department,
	}
	if v, ok := looseFloat(req.Score); ok {
		in.Score = &v
	}
	if v, ok := looseFloat(req.Total); ok {
		in.Total = &v
	}

	id, err := h.services.Results.Save(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "Error saving result")
		return
	}
	h.logger.Info("result saved", "id", id)
	writeJSON(w, http.StatusOK, saveResultResponse{Message: "Result saved", ResultID: id})
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.services.Results.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Could not load results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// DownloadAndClear sends every stored result as an attachment and deletes the exported records.
func (h *Handler) DownloadAndClear(w http.ResponseWriter, r *http.Request) {
	file, err := h.services.Results.ExportAndClear(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, r, err, "Failed to export results")
		return
	}

	h.logger.Info("results exported and cleared", "rows", file.Rows, "file", file.Name)
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

type settingsRequest struct {
	Timer           json.RawMessage `json:"timer"`
	QuestionsToShow json.RawMessage `json:"questionsToShow"`
}

type settingsResponse struct {
	Success  bool            `json:"success"`
	Settings domain.Settings `json:"settings"`
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.services.Settings.Get(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing settings fields"})
		return
	}

	var in app.SettingsInput
	in.Timer, _ = looseInt(req.Timer)
	in.QuestionsToShow, _ = looseInt(req.QuestionsToShow)

	settings, err := h.services.Settings.Update(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "Failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: settings})
}
