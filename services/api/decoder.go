package apisvc

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	// ErrorPreviewLen is the max number of characters of a non-JSON error body kept in the message.
	ErrorPreviewLen = 200
	// maxErrorBodySize bounds how much of an error body is read.
	maxErrorBodySize = 64 << 10
	// maxBodySize bounds how much of a successful response is read.
	maxBodySize = 32 << 20
)

// Kind is the kind of a successfully decoded response.
type Kind int

const (
	KindJSON Kind = iota + 1
	KindHTML
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindHTML:
		return "html"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Response is a successfully decoded response.
type Response struct {
	Kind   Kind
	Status int
	Body   []byte // raw JSON (KindJSON) or HTML (KindHTML); nil for KindEmpty
}

// JSON unmarshals the body into v. Empty responses leave v untouched.
func (r *Response) JSON(v interface{}) error {
	switch r.Kind {
	case KindEmpty:
		return nil
	case KindJSON:
		if err := json.Unmarshal(r.Body, v); err != nil {
			return &DecodeError{Err: fmt.Errorf("%s: %w", ErrInvalidResponse.Error(), err)}
		}
		return nil
	default:
		return &DecodeError{Err: fmt.Errorf("expected a JSON response, got %s", r.Kind)}
	}
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode turns resp into a Response or an error; it reads resp.Body but does not close it.
//
// A non-2xx status always yields an *HTTPError, whatever happens while reading the body.
// Otherwise text/html yields KindHTML, 204 yields KindEmpty and anything else must be valid JSON.
func Decode(resp *http.Response) (*Response, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		data, err := readBody(resp.Body)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("reading HTML response: %w", err)}
		}
		return &Response{Kind: KindHTML, Status: resp.StatusCode, Body: data}, nil
	}

	if resp.StatusCode == http.StatusNoContent {
		return &Response{Kind: KindEmpty, Status: resp.StatusCode}, nil
	}

	data, err := readBody(resp.Body)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%s: %w", ErrInvalidResponse.Error(), err)}
	}
	if !json.Valid(data) {
		return nil, &DecodeError{Err: ErrInvalidResponse}
	}
	return &Response{Kind: KindJSON, Status: resp.StatusCode, Body: data}, nil
}

// readBody reads at most maxBodySize bytes of body.
func readBody(body io.Reader) ([]byte, error) {
	data, err := ioutil.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodySize {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// decodeError extracts the best possible message: JSON `message`, JSON `error`, a text preview, the status line.
func decodeError(resp *http.Response) *HTTPError {
	statusText := http.StatusText(resp.StatusCode)
	herr := &HTTPError{
		Status:     resp.StatusCode,
		StatusText: statusText,
		Message:    strings.TrimSpace(fmt.Sprintf("API Error: %d %s", resp.StatusCode, statusText)),
	}

	data, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil && len(data) == 0 {
		return herr
	}

	// decoded member by member: a malformed `errors` must not lose `message`
	var body map[string]json.RawMessage
	if json.Unmarshal(data, &body) == nil {
		herr.FieldErrors = fieldErrors(body["errors"])
		for _, key := range []string{"message", "error"} {
			if msg := jsonString(body[key]); msg != "" {
				herr.Message = msg
				return herr
			}
		}
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		herr.Message = fmt.Sprintf("%s - Response: %s", herr.Message, preview(text, ErrorPreviewLen))
	}
	return herr
}

// jsonString returns raw as a trimmed string, or "" when raw is not a JSON string.
func jsonString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// fieldErrors accepts `{"field": "msg"}` as well as `{"field": ["msg", ...]}`.
func fieldErrors(raw json.RawMessage) map[string]string {
	var flds map[string]interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &flds) != nil || flds == nil {
		return nil
	}

	errs := make(map[string]string, len(flds))
	for field, val := range flds {
		switch v := val.(type) {
		case string:
			errs[field] = v
		case []interface{}:
			msgs := make([]string, 0, len(v))
			for _, m := range v {
				msgs = append(msgs, fmt.Sprint(m))
			}
			errs[field] = strings.Join(msgs, "; ")
		default:
			errs[field] = fmt.Sprint(v)
		}
	}
	return errs
}

// preview truncates s to n characters, marking the cut with "...".
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}
