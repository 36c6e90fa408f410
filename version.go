package notepad

import _ "embed"

// Version is the version of the library and of the notepad binary.
//
//go:embed VERSION
var Version string
