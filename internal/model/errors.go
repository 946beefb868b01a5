package model

import (
	"errors"
	"fmt"
)

// ErrorKind labels a pipeline failure for outcome records and logs.
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindNotFound    ErrorKind = "not_found"
	KindParse       ErrorKind = "parse"
	KindDataQuality ErrorKind = "data_quality"
	KindTransport   ErrorKind = "transport"
	KindOther       ErrorKind = "other"
)

// NotFoundError means the source has no data for the requested symbol.
type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: symbol not found at source", e.Symbol)
}

// ParseError means a response body lacked the expected structure
// (missing table, malformed JSON).
type ParseError struct {
	Symbol string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse: %s", e.Symbol, e.Reason)
}

// DataQualityError means assembled records violated an integrity
// invariant (malformed or duplicate dates).
type DataQualityError struct {
	Symbol string
	Reason string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("%s: data quality: %s", e.Symbol, e.Reason)
}

// TransportError wraps a network or connection failure.
type TransportError struct {
	Symbol string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Symbol, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Classify maps an error to its taxonomy kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return KindNotFound
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return KindParse
	}
	var dq *DataQualityError
	if errors.As(err, &dq) {
		return KindDataQuality
	}
	var te *TransportError
	if errors.As(err, &te) {
		return KindTransport
	}
	return KindOther
}
