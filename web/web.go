// Package web holds the server-rendered views.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	html "github.com/gofiber/template/html/v2"

	"prestige/internal/money"
)

//go:embed templates/*.html
var files embed.FS

// Engine builds the view engine. Templates get a "money" func bound to f.
func Engine(f money.Formatter) *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", f.Format)
	return engine
}
