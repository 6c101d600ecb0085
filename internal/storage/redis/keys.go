package redis

import (
	"fmt"

	"github.com/veldt-labs/quartermaster/internal/model"
)

// Key prefix for all profile data
const keyPrefix = "qm"

// realmKey returns the Redis key for a Realm, indexed by name
func realmKey(name string) string {
	return fmt.Sprintf("%s:realm:%s", keyPrefix, name)
}

// realmIDCounterKey returns the Redis key for the realm ID counter
func realmIDCounterKey() string {
	return fmt.Sprintf("%s:realm_id_seq", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(hash int64) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, hash)
}

// accountKey returns the Redis key for an Account
func accountKey(key model.AccountKey) string {
	return fmt.Sprintf("%s:account:%d:%d", keyPrefix, key.RealmID, key.Hash)
}
