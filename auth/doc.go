// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides account credentials and session tokens.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, candidate)

Passwords shorter than MinPasswordLength are refused before hashing.
CheckPassword returns ErrWrongPassword on mismatch.

# Email Addresses

NormalizeEmail trims and lower-cases an address and validates its shape.
The normalized form is what gets stored and looked up.

# Tokens

Session tokens are HMAC-SHA256 signed claims:

	token, err := auth.IssueToken(userID, secret, ttl, time.Now())
	claims, err := auth.ParseToken(token, secret, time.Now())

The token is the URL-safe base64 JSON payload {"id", "exp"} followed by a dot
and its signature. ParseToken distinguishes malformed tokens
(ErrInvalidToken), bad signatures (ErrTokenSignature) and expired tokens
(ErrTokenExpired).

# ID Generation

Records are keyed by random UUIDs:

	id := auth.NewID()
	ok := auth.ValidID(r.PathValue("id"))
*/
package auth
