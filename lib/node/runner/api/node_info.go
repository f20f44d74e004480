package api

import (
	"net/http"

	"agoranet.io/agora/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	info := api.GetNodeInfo()
	httputils.MustWriteJSON(w, 200, info)
}
