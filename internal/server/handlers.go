package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/profile-pdf/internal/countries"
	"github.com/jonathan/profile-pdf/internal/metrics"
	"github.com/jonathan/profile-pdf/internal/phone"
	"github.com/jonathan/profile-pdf/internal/rendering"
	"github.com/jonathan/profile-pdf/internal/session"
	"github.com/jonathan/profile-pdf/internal/types"
	"github.com/jonathan/profile-pdf/internal/validation"
)

// maxBodyBytes bounds request bodies; a full record is well under 2 KiB.
const maxBodyBytes = 64 << 10

type phoneRequest struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
}

type phoneValidateResponse struct {
	Valid   bool            `json:"valid"`
	Code    types.ErrorCode `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

type fieldRequest struct {
	Field       string `json:"field"`
	Value       string `json:"value"`
	CountryCode string `json:"countryCode,omitempty"`
}

type fieldResponse struct {
	Valid bool              `json:"valid"`
	Error *types.FieldError `json:"error,omitempty"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type countryRequest struct {
	CountryCode string `json:"countryCode"`
}

// draftResponse is the session snapshot returned by every /draft endpoint.
type draftResponse struct {
	Draft       types.UserDetails          `json:"draft"`
	Errors      map[string]string          `json:"errors"`
	Codes       map[string]types.ErrorCode `json:"codes"`
	State       string                     `json:"state"`
	Loaded      bool                       `json:"loaded"`
	CanDownload bool                       `json:"canDownload"`
}

type invalidResponse struct {
	Error  string                     `json:"error"`
	Errors map[string]string          `json:"errors"`
	Codes  map[string]types.ErrorCode `json:"codes"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCountries(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, countries.All())
}

func (s *Server) handlePhoneValidate(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := phoneValidateResponse{Valid: true}
	if err := phone.Validate(req.Phone, req.CountryCode); err != nil {
		resp.Valid = false
		resp.Message = err.Error()
		var verr *phone.ValidationError
		if errors.As(err, &verr) {
			resp.Code = verr.Code
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handlePhoneFormat(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"formatted": phone.Format(req.Phone, req.CountryCode)})
}

// handleValidate validates a raw record. Invalid records are a normal
// outcome and are reported with 200.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result := validation.ValidateJSON(body)
	metrics.ObserveValidation(result.Valid)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	fe := validation.ValidateField(types.Field(req.Field), req.Value, req.CountryCode)
	s.jsonResponse(w, http.StatusOK, fieldResponse{Valid: fe == nil, Error: fe})
}

// handlePDF validates the posted record and returns its PDF. Concurrent
// requests for the same normalized record share one render.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result := validation.ValidateJSON(body)
	metrics.ObserveValidation(result.Valid)
	if !result.Valid {
		s.writeError(w, r, &ErrInvalidRecord{Result: result})
		return
	}

	key, err := renderKey(*result.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The render is shared with later callers, so the first caller hanging up
	// must not cancel it. The renderer's own timeout still bounds it.
	renderCtx := context.WithoutCancel(r.Context())
	v, err, shared := s.renders.Do(key, func() (any, error) {
		return s.renderRecord(renderCtx, *result.Data)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if shared {
		s.logger.Debug("shared pdf render", zap.String("request_id", RequestID(r.Context())))
	}
	s.pdfResponse(w, v.(*rendering.Artifact))
}

func (s *Server) renderRecord(ctx context.Context, d types.UserDetails) (*rendering.Artifact, error) {
	artifact, err := rendering.Render(ctx, s.renderer, d, s.now())
	if err != nil {
		metrics.PDFRenders.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, err
	}
	metrics.PDFRenders.WithLabelValues(metrics.StatusSuccess).Inc()
	return artifact, nil
}

func (s *Server) handleGetDraft(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	field, ok := types.ParseField(r.PathValue("field"))
	if !ok {
		s.writeError(w, r, &ErrBadRequest{Field: "field", Message: fmt.Sprintf("unknown field %q", r.PathValue("field"))})
		return
	}

	var req valueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.session.SetField(r.Context(), field, req.Value); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleChangeCountry(w http.ResponseWriter, r *http.Request) {
	var req countryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.session.ChangeCountry(r.Context(), req.CountryCode); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.snapshot())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if _, err := s.session.Preview(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.snapshot())
}

func (s *Server) handlePreviewHTML(w http.ResponseWriter, r *http.Request) {
	html, err := s.session.PreviewHTML()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Edit(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleDraftPDF(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.session.Download(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.pdfResponse(w, artifact)
}

func (s *Server) snapshot() draftResponse {
	errs := s.session.Errors()
	resp := draftResponse{
		Draft:       s.session.Draft(),
		Errors:      make(map[string]string, len(errs)),
		Codes:       make(map[string]types.ErrorCode, len(errs)),
		State:       s.session.State(),
		Loaded:      s.session.Loaded(),
		CanDownload: s.session.CanDownload(),
	}
	for f, e := range errs {
		resp.Errors[string(f)] = e.Message
		resp.Codes[string(f)] = e.Code
	}
	return resp
}

func (s *Server) pdfResponse(w http.ResponseWriter, artifact *rendering.Artifact) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.PDF)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.PDF)
}

// writeError maps err to a status and writes it. Validation failures carry
// their field errors.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)

	var (
		invalidDraft *session.InvalidDraftError
		invalidRec   *ErrInvalidRecord
	)
	switch {
	case errors.As(err, &invalidDraft):
		s.jsonResponse(w, status, newInvalidResponse(types.ValidationResult{Errors: invalidDraft.Errors}))
		return
	case errors.As(err, &invalidRec):
		s.jsonResponse(w, status, newInvalidResponse(invalidRec.Result))
		return
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	s.errorResponse(w, status, err.Error())
}

func newInvalidResponse(result types.ValidationResult) invalidResponse {
	return invalidResponse{
		Error:  validation.GeneralFailureMessage,
		Errors: result.Messages(),
		Codes:  result.Codes(),
	}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrBadRequest{Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	return body, nil
}

func decodeJSON(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ErrBadRequest{Message: "invalid JSON body"}
	}
	return nil
}

// renderKey identifies a normalized record for render deduplication.
func renderKey(d types.UserDetails) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
