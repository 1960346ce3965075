package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Toxscan/internal/catalog"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

type ProductsHandler struct {
	catalog *catalog.Service
}

func NewProductsHandler(c *catalog.Service) *ProductsHandler {
	return &ProductsHandler{catalog: c}
}

type notFoundResponse struct {
	Error     string `json:"error"`
	Barcode   string `json:"barcode"`
	Logged    bool   `json:"logged"`
	ScanCount int    `json:"scan_count,omitempty"`
}

func (h *ProductsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalog.Lookup(r.Context(), chi.URLParam(r, "upc"))
	if err != nil {
		var nf *catalog.NotFoundError
		switch {
		case errors.As(err, &nf):
			writeJSON(w, http.StatusNotFound, notFoundResponse{
				Error:     "product not found",
				Barcode:   nf.Barcode,
				Logged:    nf.Logged,
				ScanCount: nf.ScanCount,
			})
		case errors.Is(err, catalog.ErrInvalidBarcode):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.NewProduct
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.catalog.AddProduct(r.Context(), req)
	switch {
	case errors.Is(err, catalog.ErrDuplicateProduct):
		resp := map[string]string{"error": "product already exists"}
		if p != nil {
			resp["existing_product_id"] = p.ProductID
		}
		writeJSON(w, http.StatusConflict, resp)
		return
	case errors.Is(err, catalog.ErrInvalidProduct), errors.Is(err, catalog.ErrInvalidBarcode):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

type substitutionsResponse struct {
	ProductID     string                `json:"product_id"`
	Substitutions []*store.Substitution `json:"substitutions"`
	Total         int                   `json:"total"`
}

func (h *ProductsHandler) Substitutions(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	q := r.URL.Query()

	var domains []string
	for _, d := range strings.Split(q.Get("domains"), ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}

	subs, total, err := h.catalog.Substitutions(r.Context(), productID, q.Get("sub_category"), domains)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if subs == nil {
		subs = []*store.Substitution{}
	}
	writeJSON(w, http.StatusOK, substitutionsResponse{ProductID: productID, Substitutions: subs, Total: total})
}
