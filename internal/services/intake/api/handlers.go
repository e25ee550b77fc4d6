package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/harborlight/intake/internal/form"
	"github.com/harborlight/intake/internal/form/validate"
	"github.com/harborlight/intake/internal/journal"
	"github.com/harborlight/intake/internal/notify"
	"github.com/harborlight/intake/internal/pipeline"
	apperrors "github.com/harborlight/intake/internal/platform/errors"
	"github.com/harborlight/intake/internal/recordstore"
)

type submitRequest struct {
	BaseID   string                    `json:"baseId"`
	TableID  string                    `json:"tableId"`
	FormData *form.TransactionFormData `json:"formData"`
}

type submitFailure struct {
	pipeline.Result
	Error string `json:"error,omitempty"`
}

func (h *Handlers) handleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.FormData == nil {
		writeError(w, http.StatusBadRequest, "formData is required")
		return
	}
	if len(req.FormData.Clients) == 0 {
		writeError(w, http.StatusBadRequest, "at least one client is required")
		return
	}

	target := h.target
	if strings.TrimSpace(req.BaseID) != "" {
		target.BaseID = req.BaseID
	}
	if strings.TrimSpace(req.TableID) != "" {
		target.TableID = req.TableID
	}

	result := h.submitter.Submit(r.Context(), *req.FormData, target)
	if !result.Success {
		failure := submitFailure{Result: result}
		if result.Err != nil {
			failure.Error = result.Err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, failure)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type coverSheetRequest struct {
	BaseID       string                    `json:"baseId"`
	TableID      string                    `json:"tableId"`
	RecordID     string                    `json:"recordId"`
	AgentRole    string                    `json:"agentRole"`
	SendEmail    bool                      `json:"sendEmail"`
	ReturnBase64 bool                      `json:"returnBase64"`
	Data         *form.TransactionFormData `json:"data"`
}

type coverSheetResponse struct {
	Success    bool   `json:"success"`
	Filename   string `json:"filename"`
	EmailSent  bool   `json:"emailSent"`
	Message    string `json:"message,omitempty"`
	Base64Data string `json:"base64Data,omitempty"`
}

func (h *Handlers) handleGenerateCoverSheet(w http.ResponseWriter, r *http.Request) {
	var req coverSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var data form.TransactionFormData
	// A persisted record takes precedence over an inline payload.
	switch {
	case strings.TrimSpace(req.RecordID) != "":
		if h.records == nil {
			writeError(w, http.StatusServiceUnavailable, "record lookups are not configured")
			return
		}
		target := h.target
		if strings.TrimSpace(req.BaseID) != "" {
			target.BaseID = req.BaseID
		}
		if strings.TrimSpace(req.TableID) != "" {
			target.TableID = req.TableID
		}
		loaded, err := h.records.Get(r.Context(), target, req.RecordID)
		if err != nil {
			status := apperrors.HTTPStatus(err)
			message := "failed to load the transaction record"
			switch {
			case errors.Is(err, recordstore.ErrNotConfigured):
				status = http.StatusServiceUnavailable
				message = "record lookups are not configured"
			case status == http.StatusNotFound:
				message = "transaction record not found"
			}
			writeError(w, status, message)
			return
		}
		data = loaded
	case req.Data != nil:
		data = *req.Data
	case strings.TrimSpace(req.AgentRole) == "":
		writeError(w, http.StatusBadRequest, "request must include data, a recordId, or an agentRole")
		return
	}

	roleLabel := data.RoleLabel()
	if trimmed := strings.TrimSpace(req.AgentRole); trimmed != "" {
		roleLabel = trimmed
	}

	pdf, err := h.renderer.Render(data, roleLabel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate the cover sheet")
		return
	}

	resp := coverSheetResponse{
		Success:  true,
		Filename: notify.Filename(roleLabel, h.clock()),
	}
	if req.SendEmail && h.dispatcher != nil {
		outcome, sendErr := h.dispatcher.Send(r.Context(), pdf, data, roleLabel)
		if sendErr != nil {
			resp.Message = "the cover sheet was generated but could not be emailed"
		} else {
			resp.EmailSent = outcome.Sent
			if outcome.Filename != "" {
				resp.Filename = outcome.Filename
			}
			if !outcome.Sent {
				resp.Message = outcome.Message
			}
		}
	}
	if req.ReturnBase64 {
		resp.Base64Data = base64.StdEncoding.EncodeToString(pdf)
	}
	writeJSON(w, http.StatusOK, resp)
}

type validateStepRequest struct {
	Step     int                       `json:"step"`
	FormData *form.TransactionFormData `json:"formData"`
}

func (h *Handlers) handleValidateStep(w http.ResponseWriter, r *http.Request) {
	var req validateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Step < form.StepAgent || req.Step > form.StepReview {
		writeError(w, http.StatusBadRequest, "step must be between 1 and 9")
		return
	}
	if req.FormData == nil {
		writeError(w, http.StatusBadRequest, "formData is required")
		return
	}
	writeJSON(w, http.StatusOK, validate.StepPermissive(req.Step, *req.FormData))
}

func (h *Handlers) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeError(w, http.StatusServiceUnavailable, "submission history is not configured")
		return
	}
	id := r.PathValue("id")
	entry, err := h.journal.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load the submission")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
