package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashBody returns the hex SHA256 of a message body
func HashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// VerifyBodyHash compares a body with a hash produced by HashBody in constant time
func VerifyBodyHash(body []byte, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashBody(body)), []byte(hash)) == 1
}
