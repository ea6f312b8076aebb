// Package ws streams filesystem change events over WebSocket.
//
// The Hub tracks connected clients and implements the filesystem
// provider's Notifier interface: every successful mutation (create,
// delete, rename, copy, move, write) is broadcast as an "fs.change"
// message so UIs can refresh the affected directory.
//
// Clients may send "ping" messages to keep the connection alive; any
// other inbound type is answered with an error message.
package ws
