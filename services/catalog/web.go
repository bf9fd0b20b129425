package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
)

type webService struct {
	logger mylog.Logger
	reader Reader
}

func NewService(reader Reader) *webService {
	return &webService{
		logger: mylog.New("catalog"),
		reader: reader,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/products", s.listProductsPage()).Methods("GET")
	router.HandleFunc("/api/products/{productId}", s.getProductPage()).Methods("GET")
}

func (s *webService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.reader.List(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) getProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := strconv.Atoi(mux.Vars(r)["productId"])
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("invalid product id: %s", mux.Vars(r)["productId"]))
			return
		}

		product, found, err := s.reader.Get(c, productID)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}
		if !found {
			errorWriter.WriteError(c, w, 4, myerrors.NewNotFoundError(fmt.Errorf("product %d not found", productID)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}
