package basket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/mycache"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket/basketevents"
	"github.com/MarcGrol/storefront/services/catalog"
)

func TestBasketService(t *testing.T) {

	t.Run("Get basket without cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket", "")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Get basket with unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket", validToken)

		// then
		assert.Equal(t, 404, response.Code)
		assert.Empty(t, response.Result().Cookies())
	})

	t.Run("First add creates basket and sets cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.BasketCreated{
			BasketUID: validToken,
		}).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.ItemAdded{
			BasketUID: validToken,
			ProductID: 5,
			Quantity:  2,
		}).Return(nil)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")

		// then
		assert.Equal(t, 201, response.Code)
		assert.Equal(t, "/api/basket", response.Header().Get("Location"))
		cookies := response.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, "buyerId", cookies[0].Name)
		assert.Equal(t, validToken, cookies[0].Value)

		view := parseView(t, response)
		assert.Equal(t, validToken, view.BuyerID)
		assert.Equal(t, int64(1), view.ID)
		assert.Equal(t, []BasketItemView{
			{ProductID: 5, Name: board.Name, Price: 25000, Type: "Boards", Brand: "React", Quantity: 2, TotalPrice: 50000},
		}, view.Items)
	})

	t.Run("Add with form body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(2)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/basket", strings.NewReader("productId=7&quantity=1"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		assert.Equal(t, 7, parseView(t, response).Items[0].ProductID)
	})

	t.Run("Remove with form body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(3)
		doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=3", "")

		// when
		request, err := http.NewRequest(http.MethodDelete, "/api/basket", strings.NewReader("productId=5&quantity=1"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.AddCookie(&http.Cookie{Name: "buyerId", Value: validToken})
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		view := parseView(t, response)
		assert.Equal(t, 5, view.Items[0].ProductID)
		assert.Equal(t, 2, view.Items[0].Quantity)
	})

	t.Run("Adding to existing basket merges lines and keeps the cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken).Times(1)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).AnyTimes()
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")
		assert.Equal(t, 201, response.Code)

		// when
		response = doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=3", validToken)

		// then
		assert.Equal(t, 201, response.Code)
		assert.Empty(t, response.Result().Cookies())
		view := parseView(t, response)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.Items[0].Quantity)
	})

	t.Run("Remove all then get returns empty basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(2)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, basketevents.ItemRemoved{
			BasketUID: validToken,
			ProductID: 5,
			Quantity:  5,
		}).Return(nil)
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=5", "")
		assert.Equal(t, 201, response.Code)

		// when
		response = doRequest(t, router, http.MethodDelete, "/api/basket?productId=5&quantity=5", validToken)
		assert.Equal(t, 200, response.Code)
		response = doRequest(t, router, http.MethodGet, "/api/basket", validToken)

		// then
		assert.Equal(t, 200, response.Code)
		view := parseView(t, response)
		assert.Equal(t, validToken, view.BuyerID)
		assert.Empty(t, view.Items)
	})

	t.Run("Remove more than present never goes negative", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).AnyTimes()
		doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")
		doRequest(t, router, http.MethodPost, "/api/basket?productId=7&quantity=1", validToken)

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/basket?productId=5&quantity=3", validToken)

		// then
		assert.Equal(t, 200, response.Code)
		view := parseView(t, response)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 7, view.Items[0].ProductID)
	})

	t.Run("Remove absent product is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(2)
		doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/basket?productId=7&quantity=1", validToken)

		// then
		assert.Equal(t, 200, response.Code)
		view := parseView(t, response)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.Items[0].Quantity)
	})

	t.Run("Remove without basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodDelete, "/api/basket?productId=5&quantity=1", validToken)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Add unknown product to new basket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=999&quantity=1", "")

		// then
		assert.Equal(t, 404, response.Code)
		assert.Empty(t, response.Result().Cookies())
	})

	t.Run("Add unknown product leaves existing basket unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(2)
		doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=999&quantity=1", validToken)

		// then
		assert.Equal(t, 404, response.Code)
		response = doRequest(t, router, http.MethodGet, "/api/basket", validToken)
		view := parseView(t, response)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.Items[0].Quantity)
	})

	t.Run("Basket reflects current product price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, products := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(2)
		doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")
		repriced := board
		repriced.Price = 19900
		assert.NoError(t, products.Put(context.TODO(), "5", repriced))

		// when
		response := doRequest(t, router, http.MethodGet, "/api/basket", validToken)

		// then
		view := parseView(t, response)
		assert.Equal(t, int64(19900), view.Items[0].Price)
		assert.Equal(t, int64(39800), view.TotalPrice)
	})

	t.Run("Adding to existing line shows current price behind a product cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, products := setupWithCatalog(t, ctrl, func(reader catalog.Reader, nower mytime.Nower) catalog.Reader {
			return catalog.NewCachedCatalog(reader, mycache.NewInMemoryCache(nower), catalog.DefaultCacheTTL)
		})

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(3)
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=2", "")
		assert.Equal(t, int64(25000), parseView(t, response).Items[0].Price)
		repriced := board
		repriced.Price = 19900
		assert.NoError(t, products.Put(context.TODO(), "5", repriced))

		// when
		response = doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=1", validToken)

		// then
		assert.Equal(t, 201, response.Code)
		view := parseView(t, response)
		assert.Equal(t, int64(19900), view.Items[0].Price)
		assert.Equal(t, 3, view.Items[0].Quantity)
		assert.Equal(t, int64(59700), view.TotalPrice)

		response = doRequest(t, router, http.MethodGet, "/api/basket", validToken)
		assert.Equal(t, view, parseView(t, response))
	})

	t.Run("Invalid parameters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, _, _, _ := setup(t, ctrl)

		for _, url := range []string{
			"/api/basket",
			"/api/basket?productId=5",
			"/api/basket?productId=5&quantity=0",
			"/api/basket?productId=5&quantity=-1",
			"/api/basket?productId=abc&quantity=1",
			"/api/basket?quantity=1",
		} {
			for _, method := range []string{http.MethodPost, http.MethodDelete} {
				response := doRequest(t, router, method, url, validToken)
				assert.Equal(t, 400, response.Code, method+" "+url)
			}
		}
	})

	t.Run("Malformed cookie is treated as absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _, uuider, publisher, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return(validToken)
		publisher.EXPECT().Publish(gomock.Any(), basketevents.TopicName, gomock.Any()).Return(nil).Times(2)

		// when
		response := doRequest(t, router, http.MethodPost, "/api/basket?productId=5&quantity=1", "garbage")

		// then
		assert.Equal(t, 201, response.Code)
		assert.Equal(t, validToken, response.Result().Cookies()[0].Value)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher, mystore.Store[catalog.Product]) {
	return setupWithCatalog(t, ctrl, func(reader catalog.Reader, nower mytime.Nower) catalog.Reader {
		return reader
	})
}

// setupWithCatalog lets a test wrap the catalog used by the service; the repository always
// joins products from the store directly.
func setupWithCatalog(t *testing.T, ctrl *gomock.Controller, wrap func(reader catalog.Reader, nower mytime.Nower) catalog.Reader) (*mux.Router, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher, mystore.Store[catalog.Product]) {
	c := context.TODO()
	repository, products := newInMemoryRepository(t, board, hat)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	reader := wrap(catalog.NewStoreCatalog(products), nower)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), basketevents.TopicName).Return(nil)

	sut := NewService(repository, reader, nower, uuider, publisher)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, nower, uuider, publisher, products
}

func doRequest(t *testing.T, router *mux.Router, method string, url string, ownerToken string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(method, url, http.NoBody)
	assert.NoError(t, err)
	if ownerToken != "" {
		request.AddCookie(&http.Cookie{Name: "buyerId", Value: ownerToken})
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func parseView(t *testing.T, response *httptest.ResponseRecorder) BasketView {
	view := BasketView{}
	err := json.Unmarshal(response.Body.Bytes(), &view)
	assert.NoError(t, err)
	return view
}
