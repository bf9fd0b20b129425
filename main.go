package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycache"
	"github.com/MarcGrol/storefront/lib/mydb"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mymetrics"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/myqueue"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/basket"
	"github.com/MarcGrol/storefront/services/basketstats"
	"github.com/MarcGrol/storefront/services/buggy"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/warmup"
)

const defaultCORSOrigins = "http://localhost:3000"

func main() {
	c := context.Background()

	router := mux.NewRouter()
	router.Use(mymetrics.Middleware)
	mymetrics.RegisterEndpoints(router)

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower, uuider)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	reader, repository, storageCleanup, err := createStorage(c)
	if err != nil {
		log.Fatalf("Error creating storage: %s", err)
	}
	defer storageCleanup()

	reader, cacheCleanup, err := withCache(c, reader, nower)
	if err != nil {
		log.Fatalf("Error creating product cache: %s", err)
	}
	defer cacheCleanup()

	catalog.NewService(reader).RegisterEndpoints(c, router)

	err = basket.NewService(repository, reader, nower, uuider, publisher).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering basket endpoints: %s", err)
	}

	// after the basket service created the topic
	err = basketstats.NewService(pubsub).RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering basket event endpoints: %s", err)
	}

	buggy.NewService().RegisterEndpoints(c, router)

	warmup.NewService(reader).RegisterEndpoints(c, router)

	startWebServerBlocking(myhttp.CORS(corsOrigins(), router))
}

// createStorage uses PostgreSQL when DATABASE_URL is set and the document store otherwise.
func createStorage(c context.Context) (catalog.Reader, basket.Repository, func(), error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, dbCleanup, err := mydb.Open(c, dsn)
		if err != nil {
			return nil, nil, nil, err
		}

		err = mydb.Migrate(db)
		if err != nil {
			dbCleanup()
			return nil, nil, nil, err
		}

		sqlCatalog := catalog.NewSQLCatalog(db)
		err = sqlCatalog.Seed(c, catalog.SeedProducts)
		if err != nil {
			dbCleanup()
			return nil, nil, nil, fmt.Errorf("error seeding products: %w", err)
		}

		log.Printf("Using PostgreSQL storage")
		return sqlCatalog, basket.NewSQLRepository(db), dbCleanup, nil
	}

	productStore, productCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		return nil, nil, nil, err
	}

	storeCatalog := catalog.NewStoreCatalog(productStore)
	err = storeCatalog.Seed(c, catalog.SeedProducts)
	if err != nil {
		productCleanup()
		return nil, nil, nil, fmt.Errorf("error seeding products: %w", err)
	}

	repository, repositoryCleanup, err := basket.NewStoreRepository(c, storeCatalog)
	if err != nil {
		productCleanup()
		return nil, nil, nil, err
	}

	log.Printf("Using document storage")
	return storeCatalog, repository, func() {
		repositoryCleanup()
		productCleanup()
	}, nil
}

// withCache puts a Redis cache in front of the catalog when REDIS_ADDR is set. A SQL backed
// catalog without Redis gets a process-local cache.
func withCache(c context.Context, reader catalog.Reader, nower mytime.Nower) (catalog.Reader, func(), error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr != "" {
		cache, cacheCleanup, err := mycache.NewRedisCache(c, addr)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using redis product cache at %s", addr)
		return catalog.NewCachedCatalog(reader, cache, catalog.DefaultCacheTTL), cacheCleanup, nil
	}

	if os.Getenv("DATABASE_URL") != "" {
		return catalog.NewCachedCatalog(reader, mycache.NewInMemoryCache(nower), catalog.DefaultCacheTTL), func() {}, nil
	}

	return reader, func() {}, nil
}

func corsOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = defaultCORSOrigins
	}
	return strings.Split(origins, ",")
}

func startWebServerBlocking(handler http.Handler) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s/api/products)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), handler)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
