package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router is a small method-aware mux with wildcard segments and colored
// request logging.
type Router struct {
	routes   map[string]HandlerFunc // key = METHOD:PATH
	paths    map[string]bool        // registered path patterns
	patterns []string               // wildcard patterns, in registration order
	prefixes map[string]http.Handler
}

func New() *Router {
	return &Router{
		routes:   make(map[string]HandlerFunc),
		paths:    make(map[string]bool),
		prefixes: make(map[string]http.Handler),
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	r.dispatch(lrw, req)

	duration := time.Since(start)
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, duration, colorReset,
	)
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	// Prefix-mounted handlers first (swagger UI and friends).
	for prefix, h := range r.prefixes {
		if strings.HasPrefix(req.URL.Path, prefix) {
			h.ServeHTTP(w, req)
			return
		}
	}

	if h, ok := r.routes[req.Method+":"+req.URL.Path]; ok {
		h(w, req)
		return
	}

	// Wildcard routes: * matches one path segment, a trailing * matches the
	// rest of the path. Checked in registration order, so register specific
	// patterns before catch-alls.
	for _, pattern := range r.patterns {
		if !matchWildcard(req.URL.Path, pattern) {
			continue
		}
		if h, ok := r.routes[req.Method+":"+pattern]; ok {
			h(w, req)
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.paths[req.URL.Path] {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

// matchWildcard checks a request path against a registered pattern.
func matchWildcard(requestPath, pattern string) bool {
	reqSegs := strings.Split(strings.Trim(requestPath, "/"), "/")
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")

	trailing := len(patSegs) > 0 && patSegs[len(patSegs)-1] == "*"
	if trailing {
		if len(reqSegs) < len(patSegs)-1 {
			return false
		}
		patSegs = patSegs[:len(patSegs)-1]
		reqSegs = reqSegs[:len(patSegs)]
	} else if len(reqSegs) != len(patSegs) {
		return false
	}

	for i, seg := range patSegs {
		if seg != "*" && reqSegs[i] != seg {
			return false
		}
	}
	return true
}

// --- Register paths ---

func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	if strings.Contains(path, "*") && !r.paths[path] {
		r.patterns = append(r.patterns, path)
	}
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)  { r.register(http.MethodPut, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Mount attaches an http.Handler to every path under the given prefix.
func (r *Router) Mount(prefix string, handler http.Handler) {
	r.prefixes[prefix] = handler
}

// Getter methods for testing
func (r *Router) Routes() map[string]HandlerFunc { return r.routes }
func (r *Router) Paths() map[string]bool         { return r.paths }

// --- Start server ---

func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r))
}

// --- Logging response writer to capture status codes ---

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---

func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
