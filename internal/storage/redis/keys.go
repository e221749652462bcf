package redis

import "fmt"

// Key prefix for all gateway data
const keyPrefix = "cogate"

// accountKey returns the Redis key for an Account
func accountKey(identity uint64) string {
	return fmt.Sprintf("%s:account:%d", keyPrefix, identity)
}

// accountNameIndexKey returns the Redis key for the name -> identity index
func accountNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:account_name:%s", keyPrefix, name)
}

// characterKey returns the Redis key for a Character
func characterKey(identity uint64) string {
	return fmt.Sprintf("%s:character:%d", keyPrefix, identity)
}

// characterNameIndexKey returns the Redis key for the name -> identity index
func characterNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:character_name:%s", keyPrefix, name)
}

// identitySequenceKey returns the Redis key for the identity counter
func identitySequenceKey() string {
	return fmt.Sprintf("%s:seq:identity", keyPrefix)
}
