package example

import "embed"

//go:embed all:.heimdall
var HeimdallFS embed.FS
