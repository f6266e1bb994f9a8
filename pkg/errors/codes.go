// Package errors provides the unified error type and domain error codes for
// patentpack. Every layer (normalization, planning, resolution, provider,
// registry, cache) uses AppError as the single carrier for structured error
// information, enabling consistent logging and caller-side classification.
package errors

// ErrorCode is a typed error code used throughout patentpack. Codes are
// partitioned by domain to avoid collisions and keep call sites legible.
type ErrorCode int

// ─────────────────────────────────────────────────────────────────────────────
// General / cross-cutting error codes (1xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeOK indicates no error.
	CodeOK ErrorCode = 0

	// CodeUnknown is a catch-all for errors that have not been categorised.
	CodeUnknown ErrorCode = 10000

	// CodeInvalidParam is returned when a caller-supplied parameter fails
	// validation (empty organization name, non-positive year, malformed CPC
	// prefix, etc.).
	CodeInvalidParam ErrorCode = 10001

	// CodeNotFound is returned when a requested resource does not exist.
	CodeNotFound ErrorCode = 10002

	// CodeInternal is returned for unexpected failures not attributable to
	// the caller.
	CodeInternal ErrorCode = 10003

	// CodeNotImplemented is returned when a capability is recognised but
	// intentionally unimplemented (e.g. a Provider capability the backend
	// does not support).
	CodeNotImplemented ErrorCode = 10004
)

// ─────────────────────────────────────────────────────────────────────────────
// Configuration error codes (2xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeConfigInvalid is returned when required configuration is missing
	// or malformed (missing API key, bad URL, zero RPM, etc.). Fatal;
	// surfaced at Provider/RegistryClient construction time.
	CodeConfigInvalid ErrorCode = 20001

	// CodeConfigLoadFailed is returned when the configuration file or
	// environment cannot be read or parsed.
	CodeConfigLoadFailed ErrorCode = 20002
)

// ─────────────────────────────────────────────────────────────────────────────
// Provider / transport error codes (3xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeProviderTransport covers connection failures, timeouts, and
	// retried 429/5xx responses that were ultimately exhausted.
	CodeProviderTransport ErrorCode = 30001

	// CodeProviderRemote covers non-retriable 4xx responses from a
	// provider, carrying status code, URL fragment, and body snippet in
	// Detail.
	CodeProviderRemote ErrorCode = 30002

	// CodeProviderCapabilityUnsupported is returned when a Provider is
	// asked to perform an operation it does not implement (e.g. assignee
	// discovery on a provider whose backend lacks it). Signalled at call
	// time, never at construction.
	CodeProviderCapabilityUnsupported ErrorCode = 30003

	// CodeProviderAuthFailed is returned when OAuth2 client-credentials
	// token acquisition or refresh fails.
	CodeProviderAuthFailed ErrorCode = 30004
)

// ─────────────────────────────────────────────────────────────────────────────
// Registry error codes (4xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeRegistryTransport covers connection/timeout failures talking to
	// the external legal-entity registry service.
	CodeRegistryTransport ErrorCode = 40001

	// CodeRegistryParseFailed is returned when a registry response cannot
	// be decoded into the expected JSON:API shape.
	CodeRegistryParseFailed ErrorCode = 40002
)

// ─────────────────────────────────────────────────────────────────────────────
// Cache error codes (5xxxx)
// ─────────────────────────────────────────────────────────────────────────────
const (
	// CodeCacheIO is returned when the probe cache or codebook cache fails
	// to read or append to its backing file. In-memory state remains
	// consistent; the caller should retry the write.
	CodeCacheIO ErrorCode = 50001

	// CodeCacheCorrupt is returned only for diagnostic purposes — malformed
	// lines are ordinarily skipped silently per the cache's forward
	// compatibility contract, never surfaced as an error.
	CodeCacheCorrupt ErrorCode = 50002
)

// codeNames maps codes to a short, stable identifier used in AppError.Error().
var codeNames = map[ErrorCode]string{
	CodeOK:                            "OK",
	CodeUnknown:                       "UNKNOWN",
	CodeInvalidParam:                  "INVALID_PARAM",
	CodeNotFound:                      "NOT_FOUND",
	CodeInternal:                      "INTERNAL",
	CodeNotImplemented:                "NOT_IMPLEMENTED",
	CodeConfigInvalid:                 "CONFIG_INVALID",
	CodeConfigLoadFailed:              "CONFIG_LOAD_FAILED",
	CodeProviderTransport:             "PROVIDER_TRANSPORT",
	CodeProviderRemote:                "PROVIDER_REMOTE",
	CodeProviderCapabilityUnsupported: "PROVIDER_CAPABILITY_UNSUPPORTED",
	CodeProviderAuthFailed:            "PROVIDER_AUTH_FAILED",
	CodeRegistryTransport:             "REGISTRY_TRANSPORT",
	CodeRegistryParseFailed:           "REGISTRY_PARSE_FAILED",
	CodeCacheIO:                       "CACHE_IO",
	CodeCacheCorrupt:                  "CACHE_CORRUPT",
}

// String returns the stable identifier for the code, or "UNKNOWN_CODE" for
// an unregistered value.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN_CODE"
}
