// Package login provides HTTP handlers for administrator sign in.
//
// This file defines the messages rendered by the login flow.
package login

const (
	// MsgInvalidCredentials is shown for unknown users and wrong passwords alike.
	MsgInvalidCredentials = "Invalid username or password"

	// MsgInactive is shown when the account is disabled.
	MsgInactive = "User is inactive"

	// MsgInternalError is shown when the session could not be created.
	MsgInternalError = "Internal server error"
)
