package basketstats

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mymetrics"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/services/basket/basketevents"
)

const eventPath = "/api/basket/event"

// webService consumes basket events delivered by pubsub and turns them into activity metrics.
type webService struct {
	logger mylog.Logger
	pubsub mypubsub.PubSub
}

func NewService(pubsub mypubsub.PubSub) *webService {
	return &webService{
		logger: mylog.New("basketstats"),
		pubsub: pubsub,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc(eventPath, s.onEventPage()).Methods("POST")

	err := s.pubsub.Subscribe(c, basketevents.TopicName, myhttp.GuessHostnameWithScheme()+eventPath)
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %w", basketevents.TopicName, err)
	}
	return nil
}

func (s *webService) onEventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := basketevents.DispatchEvent(c, r.Body, s)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *webService) OnBasketCreated(c context.Context, topic string, event basketevents.BasketCreated) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityInfo, "Basket %s created", event.BasketUID)
	mymetrics.RecordBasketEvent(event.GetEventTypeName())
	return nil
}

func (s *webService) OnItemAdded(c context.Context, topic string, event basketevents.ItemAdded) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityInfo, "Basket %s: %d of product %d added", event.BasketUID, event.Quantity, event.ProductID)
	mymetrics.RecordBasketEvent(event.GetEventTypeName())
	return nil
}

func (s *webService) OnItemRemoved(c context.Context, topic string, event basketevents.ItemRemoved) error {
	s.logger.Log(c, event.BasketUID, mylog.SeverityInfo, "Basket %s: %d of product %d removed", event.BasketUID, event.Quantity, event.ProductID)
	mymetrics.RecordBasketEvent(event.GetEventTypeName())
	return nil
}
