package buggy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
)

// webService serves fixed error responses so the browser client can exercise its error handling.
type webService struct {
	logger mylog.Logger
}

func NewService() *webService {
	return &webService{
		logger: mylog.New("buggy"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/buggy/not-found", s.errorPage(1, myerrors.NewNotFoundErrorf("resource not found"))).Methods("GET")
	router.HandleFunc("/api/buggy/bad-request", s.errorPage(2, myerrors.NewInvalidInputErrorf("this is a bad request"))).Methods("GET")
	router.HandleFunc("/api/buggy/unauthorised", s.errorPage(3, myerrors.NewAuthenticationError(fmt.Errorf("not authorised")))).Methods("GET")
	router.HandleFunc("/api/buggy/validation-error", s.validationErrorPage()).Methods("GET")
	router.HandleFunc("/api/buggy/server-error", s.errorPage(5, myerrors.NewInternalError(fmt.Errorf("this is a server error")))).Methods("GET")
}

func (s *webService) errorPage(errorCode int, err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.WriteError(c, w, errorCode, err)
	}
}

type validationErrorResponse struct {
	ErrorCode int
	Status    int
	Message   string
	Errors    map[string][]string
}

func (s *webService) validationErrorPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusBadRequest, validationErrorResponse{
			ErrorCode: 4,
			Status:    http.StatusBadRequest,
			Message:   "one or more validation errors occurred",
			Errors: map[string][]string{
				"Problem1": {"This is the first error"},
				"Problem2": {"This is the second error"},
			},
		})
	}
}
