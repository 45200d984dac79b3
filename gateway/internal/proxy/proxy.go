package proxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// New builds a reverse proxy for the backend at target. Backend failures
// surface as 502 with a JSON error body instead of the default bare 502.
func New(target string, logger *slog.Logger) (*httputil.ReverseProxy, error) {
	backendURL, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	rp := httputil.NewSingleHostReverseProxy(backendURL)
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("backend request failed",
			"backend", backendURL.Host,
			"path", r.URL.Path,
			"error", err,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"backend unavailable"}`))
	}
	return rp, nil
}
