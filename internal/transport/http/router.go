package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// RouterOptions configures the HTTP surface around the websocket endpoint.
type RouterOptions struct {
	PublicDir string // static admin/player/projector pages
	PublicURL string // base URL advertised in the join QR code; derived from the request if empty
}

// NewRouter mounts the websocket endpoint, health check, join QR code and the
// static pages, with extension-less aliases for the three app pages.
func NewRouter(ws *WSHandler, opts RouterOptions, logger *zap.Logger) *httprouter.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/ws", ws.ServeWS)
	router.GET("/healthz", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	router.GET("/qr", serveJoinQR(opts.PublicURL, logger))

	for _, page := range []string{"admin", "player", "projector"} {
		router.GET("/"+page, servePage(filepath.Join(opts.PublicDir, page+".html")))
	}

	if opts.PublicDir != "" {
		router.NotFound = http.FileServer(http.Dir(opts.PublicDir))
	}

	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		logger.Error("handler panic", zap.String("path", r.URL.Path), zap.Any("panic", v))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
	return router
}

func servePage(path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.ServeFile(w, r, path)
	}
}

// serveJoinQR renders a PNG QR code pointing players at the player page.
func serveJoinQR(publicURL string, logger *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		png, err := qrcode.Encode(joinURL(publicURL, r), qrcode.Medium, 256)
		if err != nil {
			logger.Error("failed to render join qr code", zap.Error(err))
			http.Error(w, "failed to render qr code", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(png)
	}
}

func joinURL(publicURL string, r *http.Request) string {
	if publicURL != "" {
		return strings.TrimSuffix(publicURL, "/") + "/player"
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + "/player"
}
