// Command server runs the filedeck HTTP service.
//
// Configuration comes from environment variables (see the config
// package); the -port and -root flags override the listen port and the
// managed file tree root.
package main
