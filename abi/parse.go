package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// MalformedDocumentError reports input that is not a usable ABI document:
// invalid UTF-8, invalid JSON, or JSON lacking the required shape.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err == nil {
		return "malformed ABI document: " + e.Reason
	}
	return fmt.Sprintf("malformed ABI document: %s: %v", e.Reason, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Parse decodes a JSON ABI document.
// Unknown keys are ignored; trailing data after the document is rejected.
func Parse(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, &MalformedDocumentError{Reason: "input is not valid UTF-8"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedDocumentError{Reason: "unexpected data after document"}
	}

	if err := validate.Struct(&doc); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			fields := make([]string, 0, len(valErrs))
			for _, ve := range valErrs {
				fields = append(fields, strings.TrimPrefix(ve.Namespace(), "Document."))
			}
			return nil, &MalformedDocumentError{Reason: "missing required " + strings.Join(fields, ", ")}
		}
		return nil, &MalformedDocumentError{Reason: "invalid document", Err: err}
	}
	return &doc, nil
}

// Decode reads r to the end and parses the result with Parse.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ABI: %w", err)
	}
	return Parse(data)
}
