package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"urlcheck/manager"
)

// PredictProxy forwards prediction requests from the page to the remote API.
type PredictProxy struct {
	Limiter      *manager.Limiter
	ReverseProxy *httputil.ReverseProxy
	Timeout      time.Duration
	MaxBodyBytes int64
}

// NewPredictProxy creates a proxy posting to predictURL. The incoming path is
// replaced by predictURL's path rather than joined onto it.
func NewPredictProxy(limiter *manager.Limiter, predictURL string, timeout time.Duration, maxBodyBytes int64) (*PredictProxy, error) {
	target, err := url.Parse(predictURL)
	if err != nil {
		return nil, err
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.Out.URL.Scheme = target.Scheme
			r.Out.URL.Host = target.Host
			r.Out.URL.Path = target.Path
			r.Out.URL.RawPath = target.RawPath
			r.Out.URL.RawQuery = target.RawQuery
			r.Out.Host = target.Host
			r.SetXForwarded()
		},
	}

	proxy.Transport = &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		if rec, ok := w.(*statusRecorder); ok {
			rec.failed = true
		}
		if errors.Is(err, context.Canceled) {
			logAndReturnError(w, req, "Client canceled the request", http.StatusBadRequest)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			logAndReturnError(w, req, "Gateway Timeout: prediction took too long", http.StatusGatewayTimeout, "Upstream timeout: "+err.Error())
			return
		}
		logAndReturnError(w, req, "Bad Gateway: failed to reach backend", http.StatusBadGateway, "Upstream error: "+err.Error())
	}

	return &PredictProxy{
		Limiter:      limiter,
		ReverseProxy: proxy,
		Timeout:      timeout,
		MaxBodyBytes: maxBodyBytes,
	}, nil
}

// ServeHTTP implements the http.Handler interface for PredictProxy.
func (p *PredictProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		logAndReturnError(w, r, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, p.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logAndReturnError(w, r, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		logAndReturnError(w, r, "Bad Request: unable to read body", http.StatusBadRequest)
		return
	}

	var payload RequestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logAndReturnError(w, r, "Bad Request: invalid JSON", http.StatusBadRequest)
		return
	}

	// Attempt to acquire a slot for the upstream call
	release, ok := p.Limiter.Acquire(r.Context())
	if !ok {
		logAndReturnError(w, r, "Service Unavailable: too many requests in queue", http.StatusServiceUnavailable)
		return
	}
	defer release()

	// Restore the request body for ReverseProxy
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))

	ctx := r.Context()
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	rec := &statusRecorder{ResponseWriter: w}
	p.ReverseProxy.ServeHTTP(rec, r.WithContext(ctx))
	if !rec.failed {
		log.Debugf("Forwarded prediction for %q", payload.URL)
		logRequest(r, rec.status())
	}
}

// statusRecorder remembers the status written through it. Responses produced
// by the ErrorHandler are marked failed since logAndReturnError logs them.
type statusRecorder struct {
	http.ResponseWriter
	code   int
	failed bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.code == 0 {
		s.code = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.code == 0 {
		s.code = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) status() int {
	if s.code == 0 {
		return http.StatusOK
	}
	return s.code
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
