package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func SetWebUIRoutes(router *httprouter.Router, webUI *WebUI) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
