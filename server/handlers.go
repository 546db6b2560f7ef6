package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tbxark/formassist/agent"
	"github.com/tbxark/formassist/forms"
	"github.com/tbxark/formassist/prompt"
	"github.com/tbxark/formassist/record"
	"github.com/tbxark/formassist/speech"
)

const maxAudioBytes = 25 << 20

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	FormType  string `json:"form_type"`
}

type chatResponse struct {
	Success      bool          `json:"success"`
	Response     string        `json:"response"`
	SessionID    string        `json:"session_id"`
	FormComplete bool          `json:"form_complete"`
	FormData     record.Record `json:"form_data"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r sessionRequest) key() string {
	if r.SessionID == "" {
		return agent.DefaultSessionKey
	}
	return r.SessionID
}

type formSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	FormType string   `json:"form_type"`
	Fields   []string `json:"fields"`
}

type formDetail struct {
	formSummary
	Greeting string `json:"greeting"`
	Example  string `json:"example"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SessionID == "" {
		req.SessionID = agent.DefaultSessionKey
	}

	result, err := s.svc.StartOrContinueTurn(r.Context(), req.SessionID, req.FormType, req.Message)
	if err != nil {
		slog.Error("Chat turn failed", "session_key", req.SessionID, "error", err)
		Error(w, statusFor(err), err.Error())
		return
	}

	data := result.Fields
	if !result.Complete || data == nil {
		data = record.Record{}
	}
	JSON(w, http.StatusOK, chatResponse{
		Success:      true,
		Response:     result.Reply,
		SessionID:    req.SessionID,
		FormComplete: result.Complete,
		FormData:     data,
	})
}

func (s *Server) handleGetFormData(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := s.svc.GetAccumulatedRecord(r.Context(), req.key())
	if errors.Is(err, agent.ErrSessionNotFound) {
		Error(w, http.StatusNotFound, "No form data found for this session")
		return
	}
	if err != nil {
		Error(w, statusFor(err), err.Error())
		return
	}
	if rec == nil {
		rec = record.Record{}
	}
	JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"form_data": rec,
	})
}

func (s *Server) handleResetConversation(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.ResetSession(r.Context(), req.key()); err != nil {
		Error(w, statusFor(err), err.Error())
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Conversation and form data reset successfully",
	})
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	file, header, err := r.FormFile("audio")
	if err != nil {
		Error(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read audio: "+err.Error())
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = speech.DefaultMIMEType
	}

	text, err := s.svc.TranscribeAudio(r.Context(), audio, mimeType)
	if err != nil {
		slog.Error("Transcription failed", "bytes", len(audio), "error", err)
		Error(w, statusFor(err), err.Error())
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"text":    text,
	})
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"session_id": uuid.NewString(),
	})
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	templates := s.registry.Templates()
	out := make([]formSummary, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, summarize(tpl))
	}
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"forms":   out,
	})
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	if !s.registry.Has(formID) {
		Error(w, http.StatusNotFound, "unknown form: "+formID)
		return
	}
	tpl := s.registry.Lookup(formID)
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"form": formDetail{
			formSummary: summarize(tpl),
			Greeting:    tpl.Greeting,
			Example:     prompt.ExampleMarker(tpl),
		},
	})
}

func summarize(tpl *forms.Template) formSummary {
	return formSummary{
		ID:       tpl.ID,
		Title:    tpl.Title,
		FormType: tpl.FormType,
		Fields:   tpl.FieldKeys(),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, agent.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, speech.ErrEmptyAudio):
		return http.StatusBadRequest
	case errors.Is(err, agent.ErrCapabilityFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
