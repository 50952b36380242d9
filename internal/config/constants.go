package config

// DocumentFileExt is the extension of JSON documents.
const DocumentFileExt = ".chain.json"

// DocumentFileExtensions are all recognized document file extensions
var DocumentFileExtensions = []string{".chain.json", ".chain.yaml", ".chain.yml"}

// ConfigFileNames are looked up, in order, by FindConfig.
var ConfigFileNames = []string{"chainlang.yaml", "chainlang.yml"}

// Operations available on every value
const (
	EqualsOpName    = "equals"
	NotEqualsOpName = "notEquals"
	ToStringOpName  = "toString"
)

// Number operations
const (
	AddOpName                = "add"
	SubtractOpName           = "subtract"
	MultiplyOpName           = "multiply"
	DivideOpName             = "divide"
	ModOpName                = "mod"
	PowerOpName              = "power"
	GreaterThanOpName        = "greaterThan"
	LessThanOpName           = "lessThan"
	GreaterThanOrEqualOpName = "greaterThanOrEqual"
	LessThanOrEqualOpName    = "lessThanOrEqual"
	NegateOpName             = "negate"
	RoundOpName              = "round"
)

// String operations
const (
	ConcatOpName      = "concat"
	LengthOpName      = "length"
	IncludesOpName    = "includes"
	StartsWithOpName  = "startsWith"
	EndsWithOpName    = "endsWith"
	ToUpperCaseOpName = "toUpperCase"
	ToLowerCaseOpName = "toLowerCase"
	SplitOpName       = "split"
	TrimOpName        = "trim"
)

// Boolean operations
const (
	AndOpName      = "and"
	OrOpName       = "or"
	NotOpName      = "not"
	ThenElseOpName = "thenElse"
)

// Array operations (concat, length and includes are shared with strings)
const (
	MapOpName    = "map"
	FilterOpName = "filter"
	FindOpName   = "find"
	AtOpName     = "at"
	JoinOpName   = "join"
)

// Object operations
const (
	GetOpName    = "get"
	KeysOpName   = "keys"
	ValuesOpName = "values"
	HasOpName    = "has"
)

// Operation-value operations
const (
	CallOpName = "call"
)

// DefaultMaxCallDepth bounds nested user operation invocations.
const DefaultMaxCallDepth = 256
