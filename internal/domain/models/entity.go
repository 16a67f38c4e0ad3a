package models

// Entity is implemented by every record type the admin layer manages.
type Entity interface {
	// EntityID returns the server-assigned id, nil while unpersisted.
	EntityID() *int64
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// StringPtr returns a pointer to s, or nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
