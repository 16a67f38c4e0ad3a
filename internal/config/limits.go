package config

const (
	// MaxTitleLength is the maximum length for folder and document titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxTitleLength = 255

	// MaxContentTypeLength bounds the MIME type stored next to a blob.
	MaxContentTypeLength = 255

	// DefaultPageSize is used when a list request carries no size.
	DefaultPageSize = 20

	// MaxPageSize caps list requests so a single page stays cheap.
	MaxPageSize = 100

	// MaxRequestBodyBytes bounds JSON bodies; documents carry base64 blobs.
	MaxRequestBodyBytes = 32 << 20
)
