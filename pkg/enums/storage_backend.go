package enums

import "fmt"

// StorageBackend selects the durable client storage implementation.
type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
)

var validStorageBackends = []StorageBackend{
	StorageFile,
	StorageSQLite,
	StorageRedis,
}

// String implements fmt.Stringer.
func (s StorageBackend) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StorageBackend.
func (s StorageBackend) IsValid() bool {
	for _, candidate := range validStorageBackends {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStorageBackend converts raw input into a StorageBackend.
func ParseStorageBackend(value string) (StorageBackend, error) {
	for _, candidate := range validStorageBackends {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage backend %q", value)
}
