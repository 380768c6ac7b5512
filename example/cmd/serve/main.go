package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/3-lines-studio/heimdall"
	"github.com/3-lines-studio/heimdall/example"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Heimdall Example</title>
</head>
<body>
    <h1>Image pipeline example</h1>
    {{.Hero}}
    {{.Remote}}
</body>
</html>`))

func main() {
	app := heimdall.New(example.HeimdallFS)

	hero := &heimdall.ImageMetadata{
		Src:    "/src/assets/hero.png",
		Width:  128,
		Height: 64,
		Format: "png",
	}

	router := chi.NewRouter()
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := pageTemplate.Execute(w, map[string]any{
			"Hero": app.Img(heimdall.ImgProps{
				Src:     hero,
				Alt:     "Example hero",
				Width:   64,
				Quality: "high",
			}),
			"Remote": app.Img(heimdall.ImgProps{
				Src:    "https://placehold.co/200x100.png",
				Alt:    "Remote placeholder",
				Width:  200,
				Height: 100,
			}),
		})
		if err != nil {
			log.Printf("render: %v", err)
		}
	})

	fmt.Println("Listening on http://localhost:8080")
	log.Fatal(http.ListenAndServe(":8080", app.Wrap(router)))
}
