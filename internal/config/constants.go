// Package config centralizes application-wide constants.
package config

// Application identity and storage.
const (
	AppName    = "stride"
	DBFileName = "stride.db"
)

// DefaultListenAddr is where strided serves and where the client dials
// unless overridden.
const DefaultListenAddr = "127.0.0.1:7433"

// Navigation keys (vi-style), live only while the commandline is not
// in typing mode.
const (
	KeyCursorOut  = "h"
	KeyCursorDown = "j"
	KeyCursorUp   = "k"
	KeyCursorIn   = "l"
	KeyCloseHelp  = "q"
)
