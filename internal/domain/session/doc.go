// Package session provides working-directory session management.
//
// A session pins a working directory that relative tool paths resolve
// against. Sessions are held in memory; they carry no filesystem state of
// their own and expire with the process.
//
// Example Usage:
//
//	manager := session.NewManager("/srv/files")
//	sess := manager.Create("/srv/files/projects")
//	sess, ok := manager.Get(sess.ID)
package session
