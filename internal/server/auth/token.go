package auth

import "github.com/dmitrijs2005/useraccounts/internal/common"

// tokenBytes gives access tokens 256 bits of entropy.
const tokenBytes = 32

// GenerateToken returns a new opaque access token.
func GenerateToken() (string, error) {
	return common.MakeRandHexString(tokenBytes)
}
