package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. Retries are opt-in; DefaultRetryMax is what the request layer
// uses when the caller does not ask for any.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between opt-in retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache sizes.
const (
	// DefaultCacheSize bounds the in-memory definition store.
	DefaultCacheSize = 1000

	// DefaultNATSBucket is the JetStream KV bucket used for shared definitions.
	DefaultNATSBucket = "dsp-definitions"

	// DefaultNATSTimeout bounds a single KV operation.
	DefaultNATSTimeout = 5 * time.Second
)

// Endpoint paths relative to the configured base URL.
const (
	AuthenticationPath = "/v2/authentication"
	ResourcesPath      = "/v2/resources"
	ResourcesDelete    = "/v2/resources/delete"
	ResourcesErase     = "/v2/resources/erase"
	OntologyClassPath  = "/v2/ontologies/classes"
	ListNodePath       = "/v2/node"
)

// DefaultScheme is used when a Config names no scheme.
const DefaultScheme = "http"

// Format constants.
const (
	// FormatJSON is the JSON output format.
	FormatJSON = "json"

	// FormatYAML is the YAML output format.
	FormatYAML = "yaml"

	// FormatTable is the table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is shown for empty values.
	NotAvailable = "N/A"

	// StringTruncationLimit caps cell contents in table output.
	StringTruncationLimit = 80
)
