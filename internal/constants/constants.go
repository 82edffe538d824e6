package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// GitHub API defaults.
const (
	// DefaultAPIEndpoint is the public GitHub REST API root.
	DefaultAPIEndpoint = "https://api.github.com"

	// DefaultUserAgent identifies the client when no name is configured.
	DefaultUserAgent = "ghapi-client"

	// AcceptGitHubV3 is sent as the Accept header on every request.
	AcceptGitHubV3 = "application/vnd.github.v3+json"

	// ContentTypeJSON is sent as the Content-Type header on every request.
	ContentTypeJSON = "application/json"
)

// Header names.
const (
	HeaderAccept             = "Accept"
	HeaderAuthorization      = "Authorization"
	HeaderContentType        = "Content-Type"
	HeaderUserAgent          = "User-Agent"
	HeaderRequestID          = "X-Request-Id"
	HeaderRateLimitRemaining = "X-Ratelimit-Remaining"
	HeaderRateLimitReset     = "X-Ratelimit-Reset"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are opt-in; the zero value disables them.
const (
	// DefaultRetryMax is the retry count used when a caller enables retries without a count.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination.
const (
	// DefaultPerPage matches the GitHub default page size.
	DefaultPerPage = 30

	// MaxPerPage is the largest page size GitHub accepts.
	MaxPerPage = 100

	// RateLimitJitter is added to the time until reset before spreading it
	// over the remaining request budget.
	RateLimitJitter = 2 * time.Second
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Backend names accepted by the CLI.
const (
	BackendRetryable = "retryable"
	BackendResty     = "resty"
	BackendAsync     = "async"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// StringTruncationLimit is the number of leading characters kept when
	// truncating identifiers such as commit SHAs.
	StringTruncationLimit = 7

	// MessageTruncationLimit caps the width of free text columns.
	MessageTruncationLimit = 60

	// TimeDisplayFormat is used for timestamps in tables.
	TimeDisplayFormat = "2006-01-02 15:04:05"
)

// Circuit breaker defaults.
const (
	// CircuitBreakerThreshold is the number of consecutive failures that open the circuit.
	CircuitBreakerThreshold = 5

	// CircuitBreakerTimeout is how long the circuit stays open before probing.
	CircuitBreakerTimeout = 30 * time.Second

	// CircuitBreakerSuccessThreshold is the number of probe successes that close the circuit.
	CircuitBreakerSuccessThreshold = 2
)
