package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Validator is implemented by request DTOs that can check themselves.
// Validate returns one message per problem; empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the JSON body into dest, rejecting unknown
// fields, then runs dest's Validate if it implements Validator. On any
// failure it answers 400 itself and returns false, so handlers can bail
// with a plain return.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	v, ok := dest.(Validator)
	if !ok {
		return true
	}
	if problems := v.Validate(); len(problems) > 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(problems, "; "))
		return false
	}
	return true
}
