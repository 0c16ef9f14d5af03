// Package main is the pushcast command.
//
// pushcast stores browser push registrations per channel (stock and chat) and
// broadcasts messages to them through a GCM style push gateway. The gateway
// credentials are entered by an administrator on the /setup page.
//
// Usage:
//
//	pushcast start [--dev] [--config ./etc/]
//	pushcast config [--json]
//	pushcast user add --username admin --password secret
package main
