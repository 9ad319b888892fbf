// Package shard decides which storage key holds the stop times of a trip.
//
// Trip identifiers are hashed so trips spread evenly over the keys no matter
// how the agency numbers them. The same function is used when writing and
// when looking a trip up, so no index is needed.
package shard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const KeyPrefix = "stop_times_"

// Number of distinct keys, one per value of the first digest byte
const KeyCount = 256

func Key(tripID string) string {
	sum := sha256.Sum256([]byte(tripID))

	return KeyPrefix + hex.EncodeToString(sum[:1])
}

func AllKeys() []string {
	keys := make([]string, 0, KeyCount)
	for i := 0; i < KeyCount; i++ {
		keys = append(keys, fmt.Sprintf("%s%02x", KeyPrefix, i))
	}

	return keys
}
