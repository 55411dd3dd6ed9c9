// Copyright (c) 2026 Motorpool. All rights reserved.

package sec

// Identity is the resolved reference to a user account, derived from a valid
// session cookie or access token.
//
// # Guarantees
//
// An Identity is only constructed after the account has been confirmed to
// still exist in storage. Handlers that receive a non-nil Identity can rely
// on UserID pointing at a live row; sessions left behind by deleted accounts
// resolve to nil instead.
type Identity struct {
	UserID   string
	Username string
}
