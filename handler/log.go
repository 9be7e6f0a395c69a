package handler

import (
	"net/http"
)

func logRequest(req *http.Request, status int) {
	log.Infof("%s -- %s -- %s -- %d", req.RemoteAddr, req.Method, req.URL.Path, status)
}

func logAndReturnError(w http.ResponseWriter, req *http.Request, httpResponseStr string, code int, consoleStr ...string) {
	// consoleStr is optional.
	if len(consoleStr) > 0 {
		log.Errorln(consoleStr[0])
	} else {
		log.Errorln(httpResponseStr)
	}
	http.Error(w, httpResponseStr, code)
	logRequest(req, code)
}
