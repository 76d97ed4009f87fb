package backend

import (
	"net/http"

	"github.com/aussiebroadwan/shopfront/pkg/httpx"
)

type CatalogHandler struct {
	Store *Store
}

// HandleList returns the catalog.
//
//	@Summary	List products
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is []Product"
//	@Router		/product [get].
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, "Products fetched successfully", h.Store.Products())
}

// HandleGet returns one product by slug.
//
//	@Summary	Get product
//	@Tags		Catalog
//	@Produce	json
//	@Param		slug	path		string			true	"product slug"
//	@Success	200		{object}	httpx.Envelope	"data is Product"
//	@Failure	404		{object}	httpx.Envelope
//	@Router		/product/{slug} [get].
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.ProductBySlug(r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Product fetched successfully", p)
}
