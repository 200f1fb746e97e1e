package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/services"
)

const multipartMemory = 8 << 20

// payload is a request body read as JSON or multipart form
type payload struct {
	fields map[string]interface{}
	file   *services.Upload
	form   *multipart.Form
	closer io.Closer
}

// Close releases the uploaded file and any temporary files
func (p *payload) Close() {
	if p.closer != nil {
		p.closer.Close()
	}
	if p.form != nil {
		p.form.RemoveAll()
	}
}

// readPayload reads fields from a JSON or multipart body. For multipart
// bodies the file in fileField is returned as an upload, and fields listed
// in numeric are converted to numbers when they parse as such.
func readPayload(w http.ResponseWriter, r *http.Request, maxBytes int64, fileField string, numeric ...string) (*payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readMultipart(r, fileField, numeric)
	}

	p := &payload{fields: map[string]interface{}{}}
	if err := json.NewDecoder(r.Body).Decode(&p.fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, bodyError(err)
	}
	if p.fields == nil {
		p.fields = map[string]interface{}{}
	}
	return p, nil
}

func readMultipart(r *http.Request, fileField string, numeric []string) (*payload, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, bodyError(err)
	}

	p := &payload{fields: map[string]interface{}{}, form: r.MultipartForm}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 && key != fileField {
			p.fields[key] = values[0]
		}
	}
	for _, key := range numeric {
		raw, ok := p.fields[key].(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			p.fields[key] = n
		}
	}

	if fileField == "" {
		return p, nil
	}
	file, header, err := r.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return p, nil
		}
		p.Close()
		return nil, bodyError(err)
	}
	p.closer = file
	p.file = &services.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return p, nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large", err: err}
	}
	return &requestError{status: http.StatusBadRequest, message: "Invalid request body", err: err}
}

// bind copies payload fields into a typed input. A type mismatch is a
// validation failure.
func bind(fields map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return apperror.Internal("failed to read input", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperror.Conflict("validation failed: " + typeErr.Field + " has the wrong type")
		}
		return apperror.Conflict("validation failed: " + err.Error())
	}
	return nil
}
