package schema

// Custom string types for type safety.
type (
	// FieldKind represents the input category of a schema field.
	FieldKind string

	// StatusLabel represents a qualitative bucket for a derived metric.
	StatusLabel string

	// Severity represents how urgent a recommendation is.
	Severity string

	// Rank represents a letter grade for an assessment report.
	Rank string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for evaluation history.
	DatabaseBackend string
)

// All field kinds supported.
const (
	CountField      FieldKind = "count"      // non-negative decimal
	PercentageField FieldKind = "percentage" // 0-100 inclusive
	CurrencyField   FieldKind = "currency"   // non-negative decimal
)

// All status labels supported.
const (
	ExcellentStatus StatusLabel = "Excellent"
	GoodStatus      StatusLabel = "Good"
	FairStatus      StatusLabel = "Fair"
	PoorStatus      StatusLabel = "Needs Improvement"
	NoDataStatus    StatusLabel = "N/A"
)

// All recommendation severities supported.
const (
	HighSeverity   Severity = "high"
	MediumSeverity Severity = "medium"
	LowSeverity    Severity = "low"
)

// All ranks supported, best first.
const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
	RankE Rank = "E"
	RankF Rank = "F"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	NoneBackend       DatabaseBackend = "none"
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// AllRanks lists every rank from best to worst.
var AllRanks = []Rank{RankS, RankA, RankB, RankC, RankD, RankE, RankF}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
