// websocket/live_search.go
package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/admin"
	"github.com/rriehl64/collibra-app-sub009/utils"
)

// SearchCommand is sent by a live-search client.
//
//	{"type":"search","value":"pii"}
//	{"type":"filter","name":"status","value":"Active"}
//	{"type":"sort","field":"domainCount"}
type SearchCommand struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// ServeAdminSearch streams admin.Result snapshots for the page named by the
// {page} route variable. Search text is debounced by delay.
func ServeAdminSearch(catalog admin.Catalog, delay time.Duration, upgrader *websocket.Upgrader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := catalog.Page(mux.Vars(r)["page"])
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		results := make(chan admin.Result, 8)
		done := make(chan struct{})
		view := admin.NewView(page, delay, func(res admin.Result) {
			select {
			case results <- res:
			case <-done:
			}
		})

		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			for {
				select {
				case res := <-results:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteJSON(res); err != nil {
						logger.Debug("live search write failed", zap.Error(err))
						conn.Close()
						return
					}
				case <-done:
					return
				}
			}
		}()

		defer func() {
			view.Close()
			close(done)
			<-writerDone
		}()

		view.Refresh()
		conn.SetReadLimit(maxMessageSize)
		for {
			var cmd SearchCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			switch cmd.Type {
			case "search":
				view.SetSearch(cmd.Value)
			case "filter":
				view.SetFilter(cmd.Name, cmd.Value)
			case "sort":
				view.ToggleSort(cmd.Field)
			case "refresh":
				view.Refresh()
			default:
				logger.Debug("unknown live search command", zap.String("type", cmd.Type))
			}
		}
	}
}
