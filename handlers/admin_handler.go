// handlers/admin_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rriehl64/collibra-app-sub009/admin"
	"github.com/rriehl64/collibra-app-sub009/utils"
)

// AdminHandler serves the admin catalog pages: characteristics,
// domain-types and quality-rules.
type AdminHandler struct {
	catalog admin.Catalog
}

func NewAdminHandler(catalog admin.Catalog) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// List applies ?search=, the page's equality filters and ?sort=&order=.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Page(mux.Vars(r)["page"])
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	q := admin.ParseQuery(r.URL.Query(), page.FilterNames())
	utils.RespondWithJSON(w, http.StatusOK, admin.Result{
		Page:  page.Name(),
		Query: q,
		Items: page.Search(q),
		Count: page.Count(q),
	})
}
