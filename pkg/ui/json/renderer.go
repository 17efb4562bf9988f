// Package json writes command results as indented JSON documents, one
// per call.
package json

import (
	"encoding/json"
	"io"

	"github.com/lodestone-mc/lodestone/pkg/errors"
)

type errorDoc struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Family  string                 `json:"family"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messageDoc struct {
	Message string `json:"message"`
}

// Renderer encodes view models with encoding/json, so their json tags
// define the wire shape.
type Renderer struct {
	enc *json.Encoder
}

func New(w io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &Renderer{enc: enc}, nil
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

// RenderError reports the error code and its family so scripts can branch
// without parsing the message.
func (r *Renderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	return r.enc.Encode(errorDoc{
		Error:   err.Error(),
		Code:    code,
		Family:  errors.Family(code),
		Details: errors.GetErrorDetails(err),
	})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messageDoc{Message: msg})
}
