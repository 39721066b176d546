package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/dashboard"
	"github.com/rpupo63/catalog-admin/errs"
)

const productsPath = "/products"

type productHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newProductHandler() productHandler {
	logger := log.With().Str("handlerName", "productHandler").Logger()

	return productHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

func (h productHandler) products(w http.ResponseWriter, r *http.Request) (*dashboard.ProductScreen, bool) {
	ws, err := ctxGetWorkspace(r.Context())
	if err != nil {
		h.responder.WriteError(w, errs.NewInternalErrorWithCause("missing workspace", err))
		return nil, false
	}
	return ws.Products(), true
}

func (h productHandler) next() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, ok := h.products(w, r)
		if !ok {
			return
		}
		_ = products.Next(r.Context())
		h.responder.redirect(w, r, productsPath)
	}
}

func (h productHandler) previous() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, ok := h.products(w, r)
		if !ok {
			return
		}
		_ = products.Previous(r.Context())
		h.responder.redirect(w, r, productsPath)
	}
}

// filter applies the dropdown filters and the model search from one form
func (h productHandler) filter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, ok := h.products(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("could not parse filter form"))
			return
		}

		filter := catalog.ProductFilter{
			MainCat: r.PostForm.Get("main_cat"),
			SubCat:  r.PostForm.Get("sub_cat"),
			Brand:   r.PostForm.Get("brand"),
		}
		_ = products.Filter(r.Context(), filter, r.PostForm.Get("model"))
		h.responder.redirect(w, r, productsPath)
	}
}

func (h productHandler) clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, ok := h.products(w, r)
		if !ok {
			return
		}
		_ = products.Clear(r.Context())
		h.responder.redirect(w, r, productsPath)
	}
}
