package basketevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
)

type BasketEventService interface {
	OnBasketCreated(c context.Context, topic string, event BasketCreated) error
	OnItemAdded(c context.Context, topic string, event ItemAdded) error
	OnItemRemoved(c context.Context, topic string, event ItemRemoved) error
}

// DispatchEvent decodes a pubsub push request and hands the event to the matching handler.
func DispatchEvent(c context.Context, reader io.Reader, service BasketEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case createdName:
		event := BasketCreated{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnBasketCreated(c, envelope.Topic, event)
	case itemAddedName:
		event := ItemAdded{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnItemAdded(c, envelope.Topic, event)
	case itemRemovedName:
		event := ItemRemoved{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnItemRemoved(c, envelope.Topic, event)
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}
