package core

import (
	"html/template"
)

// ErrorData drives the image responder's error page. The failure detail is
// rendered only in dev; production responses stay opaque.
type ErrorData struct {
	Message string
	IsDev   bool
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Image Error</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 700px; margin: 50px auto; padding: 0 20px; }
        h1 { color: #e74c3c; font-size: 1.4rem; }
        pre { background: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; white-space: pre-wrap; }
    </style>
</head>
<body>
    <h1>Image Request Failed</h1>
    {{if .IsDev}}
    <pre>{{.Message}}</pre>
    <p>Check the transform parameters in the requested URL.</p>
    {{else}}
    <p>The requested image could not be processed.</p>
    {{end}}
</body>
</html>`))
