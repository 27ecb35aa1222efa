package constants

// Error codes surfaced by the ledger and its collaborators.
const (
	ErrCodeLogNotFound       = "LOG_NOT_FOUND"
	ErrCodeAircraftNotFound  = "AIRCRAFT_NOT_FOUND"
	ErrCodeInvalidFlightTime = "INVALID_FLIGHT_TIME"
	ErrCodeInvalidLogDate    = "INVALID_LOG_DATE"
	ErrCodeLogInactive       = "LOG_INACTIVE"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
	ErrCodeSweepFailed       = "SWEEP_FAILED"
	ErrCodeDocumentNotFound  = "DOCUMENT_NOT_FOUND"
	ErrCodeInspectionMissing = "INSPECTION_NOT_FOUND"
	ErrCodeNoLedgerTotals    = "NO_LEDGER_TOTALS"
)

var errorMessages = map[string]string{
	ErrCodeLogNotFound:       "Daily log not found in this organization",
	ErrCodeAircraftNotFound:  "Aircraft not found in this organization",
	ErrCodeInvalidFlightTime: "Flight time must be in HH:MM format",
	ErrCodeInvalidLogDate:    "Log date must be in YYYY-MM-DD format",
	ErrCodeLogInactive:       "Daily log has been deleted",
	ErrCodeStoreUnavailable:  "Storage is unavailable, please retry",
	ErrCodeSweepFailed:       "Failed to recompute running totals",
	ErrCodeDocumentNotFound:  "Document not found in this organization",
	ErrCodeInspectionMissing: "Inspection schedule not found",
	ErrCodeNoLedgerTotals:    "No active daily logs recorded for this aircraft",
}

// GetErrorMessage returns the user-facing message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unexpected error"
}
