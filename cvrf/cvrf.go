package cvrf

import (
	"bytes"
	"encoding/json"
	"io"

	"golang.org/x/xerrors"
)

// Decode reads a CVRF JSON document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if xerrors.As(err, &typeErr) {
			return nil, xerrors.Errorf("invalid CVRF field %s: %w", typeErr.Field, err)
		}
		return nil, xerrors.Errorf("failed to decode CVRF JSON: %w", err)
	}
	return &doc, nil
}

// Unmarshal is Decode for an in-memory payload.
func Unmarshal(b []byte) (*Document, error) {
	return Decode(bytes.NewReader(b))
}
