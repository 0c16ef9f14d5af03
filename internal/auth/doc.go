// Package auth authenticates local administrator accounts and guards admin pages.
//
// Users live in the users table with an Argon2id password hash. A successful
// login stores the user in the session storage under a random session id that
// is handed to the browser as the "session" cookie. LoadUser resolves the
// cookie on every request and reloads the user from the database, so revoked
// admin rights apply at once. RequireAdmin rejects requests from anyone who is
// not a logged in, active administrator.
//
// Example usage:
//
//	local := auth.NewLocalProvider(db)
//	user, err := local.Authenticate(username, password)
//
//	app.Use(auth.LoadUser(local))
//	app.Get("/setup", auth.RequireAdmin(), handler)
package auth
