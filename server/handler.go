package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/confmorph/confmorph/convert"
)

// maxBodyBytes caps the whole request body. It sits above the content
// ceiling so oversize content (up to this bound) is classified by the
// validation gate rather than cut off at the transport.
const maxBodyBytes = 2 << 20

type successResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Hint    string `json:"hint,omitempty"`
	Format  string `json:"format,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, &convert.Error{
				Code:    convert.CodeContentTooLarge,
				Message: fmt.Sprintf("request body exceeds %d bytes", maxBodyBytes),
				Status:  http.StatusRequestEntityTooLarge,
			})
			return
		}
		writeError(w, &convert.Error{
			Code:    convert.CodeInvalidBody,
			Message: "could not read request body",
			Status:  http.StatusBadRequest,
		})
		return
	}

	var raw convert.RawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		writeError(w, &convert.Error{
			Code:    convert.CodeInvalidBody,
			Message: "request body must be a JSON object with string fields from, to, and content",
			Status:  http.StatusBadRequest,
		})
		return
	}

	req, verr := convert.ValidateRequest(&raw)
	if verr != nil {
		writeError(w, verr)
		return
	}

	result, cerr := convert.Convert(req)
	if cerr != nil {
		writeError(w, cerr)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Result: result})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, e *convert.Error) {
	writeJSON(w, e.Status, errorResponse{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
		Hint:    e.Hint,
		Format:  e.Format,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// encoding errors past this point have nowhere to go
	_ = json.NewEncoder(w).Encode(v)
}
