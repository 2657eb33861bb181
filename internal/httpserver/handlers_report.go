package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"gatewayinfo/internal/render"
	"gatewayinfo/internal/report"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// StatusOK is the only status line the report ever answers with.
const StatusOK = "200 OK"

// Response is a fully computed hosted reply: status line, headers, one body chunk.
type Response struct {
	Status string
	Header http.Header
	Body   []byte
}

// Respond builds the HTML report for vars. It fails only when the environment
// or the request variables cannot be enumerated.
func (s *Server) Respond(vars report.Vars) (Response, error) {
	rep, err := s.collector.Build(vars)
	if err != nil {
		return Response{}, err
	}
	body := []byte(render.HTML(rep))

	h := http.Header{}
	h.Set("Content-type", render.FormatHTML.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(body)))
	return Response{Status: StatusOK, Header: h, Body: body}, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	resp, err := s.Respond(s.requestVars(r))
	if err != nil {
		s.log.Error("report generation failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(resp.Body)
}

// requestVars maps r onto CGI style variables.
func (s *Server) requestVars(r *http.Request) report.Vars {
	scriptName := s.mountPath()
	pathInfo := strings.TrimPrefix(r.URL.Path, scriptName)

	scheme := "http"
	defPort := "80"
	if r.TLS != nil {
		scheme = "https"
		defPort = "443"
	}
	serverName, serverPort := r.Host, defPort
	if h, p, err := net.SplitHostPort(r.Host); err == nil {
		serverName, serverPort = h, p
	}
	remote := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remote = h
	}

	vars := report.Vars{
		"REQUEST_METHOD":     r.Method,
		"SCRIPT_NAME":        scriptName,
		"PATH_INFO":          pathInfo,
		"QUERY_STRING":       r.URL.RawQuery,
		"CONTENT_TYPE":       r.Header.Get("Content-Type"),
		"CONTENT_LENGTH":     "",
		"SERVER_NAME":        serverName,
		"SERVER_PORT":        serverPort,
		"SERVER_PROTOCOL":    r.Proto,
		"REMOTE_ADDR":        remote,
		"gateway.url_scheme": scheme,
		"gateway.request_id": middleware.GetReqID(r.Context()),
	}
	if r.ContentLength > 0 {
		vars["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}

	for k, vs := range r.Header {
		if k == "Content-Type" || k == "Content-Length" {
			continue
		}
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(k, "-", "_"))
		vars[key] = strings.Join(vs, ",")
	}
	if r.Host != "" {
		vars["HTTP_HOST"] = r.Host
	}
	return vars
}
