package services

import "fmt"

// LedgerError is the typed error the ledger service surfaces to handlers.
// Code is one of the constants.ErrCode* values so callers can map to a
// status code without string matching.
type LedgerError struct {
	Code    string
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}
