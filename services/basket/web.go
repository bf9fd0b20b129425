package basket

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mymetrics"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket/basketevents"
	"github.com/MarcGrol/storefront/services/catalog"
)

const (
	basketPath      = "/api/basket"
	maxFormBodySize = 10 << 20
)

type webService struct {
	logger    mylog.Logger
	nower     mytime.Nower
	publisher mypublisher.Publisher
	service   *service
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(repository Repository, reader catalog.Reader, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	logger := mylog.New("basket")
	return &webService{
		logger:    logger,
		nower:     nower,
		publisher: pub,
		service:   newService(logger, nower, uuider, repository, reader, pub),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc(basketPath, s.getBasketPage()).Methods("GET")
	router.HandleFunc(basketPath, s.addItemPage()).Methods("POST")
	router.HandleFunc(basketPath, s.removeItemPage()).Methods("DELETE")

	err := s.publisher.CreateTopic(c, basketevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", basketevents.TopicName, err)
	}

	return nil
}

type itemParams struct {
	ProductID int `form:"productId"`
	Quantity  int `form:"quantity"`
}

// parseItemParams reads productId and quantity from the query string or a form body.
func parseItemParams(r *http.Request) (itemParams, error) {
	params := itemParams{}

	err := r.ParseForm()
	if err != nil {
		return params, myerrors.NewInvalidInputError(err)
	}

	if r.Method == http.MethodDelete {
		err = parseDeleteBody(r)
		if err != nil {
			return params, myerrors.NewInvalidInputError(err)
		}
	}

	err = formcodec.NewDecoder().Decode(&params, r.Form)
	if err != nil {
		return params, myerrors.NewInvalidInputErrorf("error decoding parameters: %s", err)
	}

	if params.ProductID < 1 {
		return params, myerrors.NewInvalidInputErrorf("missing or invalid productId")
	}
	if params.Quantity < 1 {
		return params, myerrors.NewInvalidInputErrorf("missing or invalid quantity")
	}

	return params, nil
}

// parseDeleteBody adds a form encoded DELETE body to r.Form; ParseForm skips bodies of DELETE requests.
// Body values take precedence over query values.
func parseDeleteBody(r *http.Request) error {
	if r.Body == nil {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/x-www-form-urlencoded" {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBodySize))
	if err != nil {
		return fmt.Errorf("error reading request body: %w", err)
	}
	bodyValues, err := url.ParseQuery(string(body))
	if err != nil {
		return fmt.Errorf("error parsing request body: %w", err)
	}
	for key, values := range bodyValues {
		r.Form[key] = append(values, r.Form[key]...)
	}

	return nil
}

func (s *webService) getBasketPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		ownerToken, _ := resolveOwnerToken(r)

		view, err := s.service.getBasket(c, ownerToken)
		if err != nil {
			mymetrics.RecordBasketOperation("get", myerrors.GetHTTPStatus(err))
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		mymetrics.RecordBasketOperation("get", http.StatusOK)
		errorWriter.Write(c, w, http.StatusOK, view)
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		params, err := parseItemParams(r)
		if err != nil {
			mymetrics.RecordBasketOperation("add", myerrors.GetHTTPStatus(err))
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		ownerToken, _ := resolveOwnerToken(r)

		view, mintedToken, err := s.service.addItemToBasket(c, ownerToken, params.ProductID, params.Quantity)
		if err != nil {
			mymetrics.RecordBasketOperation("add", myerrors.GetHTTPStatus(err))
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		if mintedToken != "" {
			attachOwnerToken(w, mintedToken, s.nower.Now())
		}
		w.Header().Set("Location", basketPath)

		mymetrics.RecordBasketOperation("add", http.StatusCreated)
		errorWriter.Write(c, w, http.StatusCreated, view)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		params, err := parseItemParams(r)
		if err != nil {
			mymetrics.RecordBasketOperation("remove", myerrors.GetHTTPStatus(err))
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		ownerToken, _ := resolveOwnerToken(r)

		view, err := s.service.removeBasketItem(c, ownerToken, params.ProductID, params.Quantity)
		if err != nil {
			mymetrics.RecordBasketOperation("remove", myerrors.GetHTTPStatus(err))
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		mymetrics.RecordBasketOperation("remove", http.StatusOK)
		errorWriter.Write(c, w, http.StatusOK, view)
	}
}
