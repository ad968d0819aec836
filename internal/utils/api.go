package utils

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const maxBodyBytes = 1 << 20

type ApiError struct {
	StatusCode int                 `json:"-"`
	Success    bool                `json:"success"`
	Msg        string              `json:"message"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

type ContentType string

type XMLResponse struct {
	XMLName xml.Name        `xml:"response"`
	Data    interface{}     `xml:"data,omitempty"`
	Error   string          `xml:"error,omitempty"`
	Fields  []XMLFieldError `xml:"errors>field,omitempty"`
}

type XMLFieldError struct {
	Name     string   `xml:"name,attr"`
	Messages []string `xml:"message"`
}

const (
	ContentTypeJSON ContentType = "application/json"
	ContentTypeXML  ContentType = "application/xml"
)

func (o *ApiError) Error() string {
	return fmt.Sprintf("%d: %s", o.StatusCode, o.Msg)
}

// JsonDecodeBody decodes a single JSON document of at most 1 MiB into dst.
func JsonDecodeBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return err
	}
	if len(body) > maxBodyBytes {
		return errors.New("request body too large")
	}
	return json.Unmarshal(body, dst)
}

func NewApiError(statusCode int, msg string) ApiError {
	return ApiError{StatusCode: statusCode, Msg: msg}
}

func NewInternalServerError(msg string) ApiError {
	return NewApiError(http.StatusInternalServerError, msg)
}

func NewBadRequest(msg string) ApiError {
	return NewApiError(http.StatusBadRequest, msg)
}

func NewUnauthorized(msg string) ApiError {
	return NewApiError(http.StatusUnauthorized, msg)
}

func NewForbidden(msg string) ApiError {
	return NewApiError(http.StatusForbidden, msg)
}

func NewNotFound(msg string) ApiError {
	return NewApiError(http.StatusNotFound, msg)
}

func NewValidationFailed(fields map[string][]string) ApiError {
	return ApiError{
		StatusCode: http.StatusUnprocessableEntity,
		Msg:        "Validation failed",
		Errors:     fields,
	}
}

// RenderResponse writes res as JSON or XML depending on the Accept header.
// A nil res writes only the status line.
func RenderResponse(r *http.Request, w http.ResponseWriter, statusCode int, res interface{}) {
	contentType := getResponseContentType(r)
	marshal := json.Marshal
	if contentType == ContentTypeXML {
		marshal = marshalXML
	}

	w.Header().Set("Content-Type", string(contentType))
	if res == nil {
		w.WriteHeader(statusCode)
		return
	}

	body, err := marshal(res)
	if err != nil {
		ae := NewInternalServerError(err.Error())
		statusCode = ae.StatusCode
		// an ApiError always marshals
		body, _ = marshal(ae)
	}
	w.WriteHeader(statusCode)
	w.Write(body)
}

// AllowedContentTypes rejects requests whose media type is not listed.
// Parameters such as charset are ignored.
func AllowedContentTypes(next http.HandlerFunc, mediaTypes ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType := strings.TrimSpace(strings.Split(r.Header.Get("content-type"), ";")[0])
		found := existsInSlice(mediaTypes, strings.ToLower(mediaType))
		if found {
			next(w, r)
		} else {
			ae := NewApiError(http.StatusUnsupportedMediaType, "unsupported content type")
			RenderResponse(r, w, ae.StatusCode, ae)
		}
	}
}

func existsInSlice(list []string, needle string) bool {
	for i := range list {
		if list[i] == needle {
			return true
		}
	}
	return false
}

// getResponseContentType picks the first supported media type listed in
// Accept, defaulting to JSON.
func getResponseContentType(r *http.Request) ContentType {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(strings.Split(part, ";")[0])
		if ct := ContentType(mediaType); ct == ContentTypeJSON || ct == ContentTypeXML {
			return ct
		}
	}
	return ContentTypeJSON
}

func marshalXML(res interface{}) ([]byte, error) {
	doc := XMLResponse{Data: res}
	switch v := res.(type) {
	case ApiError:
		doc = XMLResponse{Error: v.Msg, Fields: xmlFieldErrors(v.Errors)}
	case *ApiError:
		doc = XMLResponse{Error: v.Msg, Fields: xmlFieldErrors(v.Errors)}
	case error:
		doc = XMLResponse{Error: v.Error()}
	}
	return xml.Marshal(doc)
}

func xmlFieldErrors(fields map[string][]string) []XMLFieldError {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]XMLFieldError, 0, len(names))
	for _, name := range names {
		out = append(out, XMLFieldError{Name: name, Messages: fields[name]})
	}
	return out
}
