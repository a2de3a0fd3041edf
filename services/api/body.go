package apisvc

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"
)

const mimeJSON = "application/json"

// Body is a request payload: either a JSONBody or a MultipartBody.
type Body interface {
	// encode returns the encoded payload and the content type it must be sent with.
	encode() (io.Reader, string, error)
	// ownsContentType reports whether the encoded content type overrides any caller header.
	ownsContentType() bool
}

// JSONBody is encoded as JSON and sent as application/json.
type JSONBody struct {
	Value interface{}
}

func (b JSONBody) encode() (io.Reader, string, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", errors.Wrap(ErrInvalidBody, err.Error())
	}
	return bytes.NewReader(data), mimeJSON, nil
}

func (JSONBody) ownsContentType() bool { return false }

// FilePart is a file field of a MultipartBody.
type FilePart struct {
	Field    string
	Filename string
	// Content is consumed when the body is encoded, so a body holding a FilePart can be sent once.
	Content io.Reader
}

// FormField is a plain field of a MultipartBody; order is preserved on the wire.
type FormField struct {
	Name  string
	Value string
}

// MultipartBody is sent as multipart/form-data with its own boundary.
type MultipartBody struct {
	Fields []FormField
	Files  []FilePart
}

func (b MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fld := range b.Fields {
		if err := w.WriteField(fld.Name, fld.Value); err != nil {
			return nil, "", errors.Wrapf(err, "writing field %q", fld.Name)
		}
	}
	for _, f := range b.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", errors.Wrapf(err, "creating file part %q", f.Field)
		}
		if f.Content != nil {
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, "", errors.Wrapf(err, "copying file %q", f.Filename)
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart writer")
	}
	return &buf, w.FormDataContentType(), nil
}

// the boundary in the content type must match the encoded body
func (MultipartBody) ownsContentType() bool { return true }
