package cache

import "github.com/google/uuid"

const prefix = "food:"

// KeyStore returns the cache key for a store's directory entry.
func KeyStore(id uuid.UUID) string {
	return prefix + "store:" + id.String()
}

// KeyStoreByManager returns the cache key mapping a manager to a store entry.
func KeyStoreByManager(managerID uuid.UUID) string {
	return prefix + "store-manager:" + managerID.String()
}
