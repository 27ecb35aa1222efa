package constants

type (
	RequestSource    string
	APIStatus        string
	CachePrefix      string
	DocumentCategory string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAircraftTotals   CachePrefix = "AC_TOTALS_"
	CachePrefixInspectionStatus CachePrefix = "INSP_STATUS_"
	CachePrefixOrgConfig        CachePrefix = "ORG_CFG_"

	DocCategoryManual  DocumentCategory = "manual"
	DocCategoryLibrary DocumentCategory = "library"
	DocCategoryChart   DocumentCategory = "chart"
)

// LedgerReconcileStream is the Redis Stream a dirty ledger range is pushed to.
// One stream per organization keeps sweeps for different tenants independent.
const LedgerReconcileStream = "ledger:reconcile:%s"

// LedgerReconcileGroup is the consumer group the reconcile workers read with.
const LedgerReconcileGroup = "ledger-workers"
