package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/artaltay/miniapp/lib/myhttpclient"
	"github.com/artaltay/miniapp/lib/mypublisher"
	"github.com/artaltay/miniapp/lib/mypubsub"
	"github.com/artaltay/miniapp/lib/myqueue"
	"github.com/artaltay/miniapp/lib/mystore"
	"github.com/artaltay/miniapp/lib/mytime"
	"github.com/artaltay/miniapp/lib/myuuid"
	"github.com/artaltay/miniapp/lib/myvault"
	"github.com/artaltay/miniapp/services/cart"
	"github.com/artaltay/miniapp/services/catalog"
	"github.com/artaltay/miniapp/services/checkout"
	"github.com/artaltay/miniapp/services/debug"
	"github.com/artaltay/miniapp/services/eventapi"
	"github.com/artaltay/miniapp/services/mainbutton"
	"github.com/artaltay/miniapp/services/profile"
	"github.com/artaltay/miniapp/services/submission"
	"github.com/artaltay/miniapp/services/upstream"
)

func main() {
	c := context.Background()

	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found: continue with true environment")
	}

	nower := mytime.RealNower{}
	sleeper := mytime.RealSleeper{}
	uuider := myuuid.RealUUIDer{}

	logBuffer := debug.NewLogBuffer(nower)
	logBuffer.Install()

	router := mux.NewRouter()

	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}
	defer vaultCleanup()

	cartStore, cartStoreCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()

	sessionStore, sessionStoreCleanup, err := mystore.New[eventapi.CheckoutSession](c)
	if err != nil {
		log.Fatalf("Error creating checkout session store: %s", err)
	}
	defer sessionStoreCleanup()

	confirmationStore, confirmationStoreCleanup, err := mystore.New[eventapi.ConfirmationRecord](c)
	if err != nil {
		log.Fatalf("Error creating confirmation store: %s", err)
	}
	defer confirmationStoreCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()

	settings := upstream.NewSettings(
		upstream.Environment(os.Getenv("ART_ALTAY_ENV")),
		os.Getenv("ART_ALTAY_USE_MOCKS") != "false")
	if baseURL := os.Getenv("ART_ALTAY_API_BASE_URL"); baseURL != "" {
		settings.OverrideBaseURL(baseURL)
	}
	capturer := upstream.NewCapturer()

	realClient := upstream.NewHTTPClient(
		myhttpclient.NewJSONHTTPClient(upstream.NewTransport(vault, settings, capturer)),
		settings)
	mockedClient := upstream.NewMockedClient(time.Now().UnixNano(), nower, uuider)
	client := upstream.NewResilientClient(realClient, mockedClient, settings)

	catalogService := catalog.NewWebService(client)
	catalogService.RegisterEndpoints(c, router)

	cartService := cart.NewWebService(cartStore, client, nower)
	cartService.RegisterEndpoints(c, router)

	buttonService := mainbutton.NewWebService()
	buttonService.RegisterEndpoints(c, router)

	submissionService := submission.NewWebService(client, cartService, confirmationStore, publisher, queue, nower, sleeper, uuider)
	err = submissionService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering submission endpoints: %s", err)
	}

	checkoutService := checkout.NewWebService(sessionStore, client, cartService, buttonService,
		mainbutton.NewLoggingHaptics(), submissionService, nower, uuider)
	checkoutService.RegisterEndpoints(c, router)

	profileService := profile.NewWebService(client)
	profileService.RegisterEndpoints(router)

	debugService := debug.NewWebService(capturer, logBuffer, settings)
	debugService.RegisterEndpoints(router)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
