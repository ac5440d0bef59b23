package provider

import (
	"crypto/md5"
	"encoding/hex"
)

// clientKeySalt is appended to the customer secret before hashing, matching
// the provider's key derivation
const clientKeySalt = "test"

// ClientKey derives the provider client key from a customer secret key
func ClientKey(secretKey string) string {
	sum := md5.Sum([]byte(secretKey + clientKeySalt))
	return hex.EncodeToString(sum[:])
}
