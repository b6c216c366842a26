// Package manifest serves the web app manifest. Browsers read it to decide
// whether to offer installing the front-end as a standalone app; whether and
// when to show that prompt stays with the browser and the front-end.
package manifest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type icon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type document struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	StartURL        string `json:"start_url"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
	Icons           []icon `json:"icons"`
}

type Handler struct {
	doc document
}

func NewHandler(appName string) *Handler {
	return &Handler{
		doc: document{
			Name:            appName,
			ShortName:       appName,
			StartURL:        "/",
			Display:         "standalone",
			BackgroundColor: "#ffffff",
			ThemeColor:      "#4f46e5",
			Icons: []icon{
				{Src: "/icons/icon-192.png", Sizes: "192x192", Type: "image/png"},
				{Src: "/icons/icon-512.png", Sizes: "512x512", Type: "image/png"},
			},
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if err := json.NewEncoder(w).Encode(h.doc); err != nil {
		slog.Error("failed to encode manifest", "error", err)
	}
}
