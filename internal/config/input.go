package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexcase/interest-engine/internal/calculation"
	"github.com/lexcase/interest-engine/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of calculation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a request from a YAML or JSON file and validates it.
// Files ending in .json are decoded as JSON, everything else as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc *RequestDocument
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		doc, err = ip.DecodeJSON(bytes.NewReader(data))
	} else {
		doc, err = ip.DecodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return ip.ParseDocument(doc)
}

// DecodeYAML parses a YAML request document without validating it.
func (ip *InputParser) DecodeYAML(data []byte) (*RequestDocument, error) {
	var doc RequestDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// DecodeJSON parses a JSON request document without validating it. Unknown
// fields are rejected so typos in optional settings do not go unnoticed.
func (ip *InputParser) DecodeJSON(r io.Reader) (*RequestDocument, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc RequestDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrMalformedRequest, err)
	}
	return &doc, nil
}

// ParseDocument converts doc into a request and validates it. Validation
// failures unwrap to *calculation.ValidationError.
func (ip *InputParser) ParseDocument(doc *RequestDocument) (*domain.CalculationRequest, error) {
	req, err := doc.ToRequest()
	if err != nil {
		return nil, err
	}
	if verr := calculation.Validate(req); verr != nil {
		return nil, fmt.Errorf("request validation failed: %w", verr)
	}
	return &req, nil
}

// WriteYAML renders req as a YAML request document.
func (ip *InputParser) WriteYAML(w io.Writer, req domain.CalculationRequest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromRequest(req)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
