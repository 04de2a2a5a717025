// Package cli implements newsctl, the command-line client for the newsroom
// HTTP API.
//
// Commands:
//   - register, login, logout, me
//   - news list | get | create | update | delete
//   - version
//
// login stores the access token in a 0600 file (see Config.TokenFile) that
// later commands read back. Passwords are prompted for without echo.
package cli
