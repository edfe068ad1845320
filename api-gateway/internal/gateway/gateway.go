package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	OrderSvcURL string
	RelaySvcURL string
}

type route struct {
	prefix  string
	exact   bool
	backend func(Config) string
}

func orderSvc(c Config) string { return c.OrderSvcURL }
func relaySvc(c Config) string { return c.RelaySvcURL }

// routes is matched in order; the first hit wins.
var routes = []route{
	{prefix: "/api/restaurants", backend: orderSvc},
	{prefix: "/api/cart", backend: orderSvc},
	{prefix: "/api/checkout", backend: orderSvc},
	{prefix: "/api/orders", backend: orderSvc},
	{prefix: "/api/wallet", backend: orderSvc},
	{prefix: "/api/sms/", backend: relaySvc},
	{prefix: "/api/send-email", exact: true, backend: relaySvc},
}

func matches(rt route, path string) bool {
	if rt.exact {
		return path == rt.prefix
	}
	if strings.HasSuffix(rt.prefix, "/") {
		return strings.HasPrefix(path, rt.prefix)
	}
	return path == rt.prefix || strings.HasPrefix(path, rt.prefix+"/")
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.Logger
}

func NewGateway(config Config, client HTTPClient, logger *zap.Logger) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

// Backend returns the base URL serving path, or "" when no route matches.
func (g *Gateway) Backend(path string) string {
	for _, rt := range routes {
		if matches(rt, path) {
			return rt.backend(g.config)
		}
	}
	return ""
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Error("failed to build upstream request", zap.String("url", url), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("upstream unreachable", zap.String("target", targetURL), zap.Error(err))
		writeError(w, http.StatusBadGateway, "Upstream service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warn("failed to copy upstream response", zap.Error(err))
	}
	g.logger.Debug("proxied",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("target", targetURL),
		zap.Int("status", resp.StatusCode))
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	backend := g.Backend(r.URL.Path)
	if backend == "" {
		g.logger.Info("unmatched route", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		writeError(w, http.StatusNotFound, "API route not found")
		return
	}
	g.ProxyRequest(w, r, backend)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
