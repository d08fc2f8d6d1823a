// handlers/search_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/rriehl64/collibra-app-sub009/search"
	"github.com/rriehl64/collibra-app-sub009/utils"
)

type SearchHandler struct {
	options search.FilterOptions
}

func NewSearchHandler(options search.FilterOptions) *SearchHandler {
	return &SearchHandler{options: options}
}

// Suggestions answers ?q=<prefix>&limit=<n>.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	utils.RespondWithJSON(w, http.StatusOK, search.Suggest(r.URL.Query().Get("q"), h.options, limit))
}

// FilterOptions lists the values offered by the advanced search filters.
func (h *SearchHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.options)
}

// DataAssetFilter turns the advanced-search query string into the data
// asset list filter.
func DataAssetFilter(r *http.Request) bson.M {
	return search.ParseCriteria(r.URL.Query()).Filter()
}
