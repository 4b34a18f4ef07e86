package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/invoicepress/invoicepress/conf"
	"github.com/invoicepress/invoicepress/gate"
	"github.com/invoicepress/invoicepress/render"
	"github.com/invoicepress/invoicepress/routing"
	"github.com/invoicepress/invoicepress/subscribers"
	"github.com/invoicepress/invoicepress/throttle"
	"github.com/invoicepress/invoicepress/web"
)

func main() {
	appRoot, err := os.Getwd()
	if err != nil {
		log.Fatalf("[ERROR] resolving app root: %v", err)
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	app := &conf.Core{}
	if err = app.BaseInit(appRoot, rootCtx, rootCancel); err != nil {
		log.Fatalf("[ERROR] base init: %v", err)
	}
	defer app.ResourceCleanUp()

	if err = app.PrepareSQLDatabases(); err != nil {
		log.Fatalf("[ERROR] preparing sql databases: %v", err)
	}
	if err = app.PrepareKVDatabase(); err != nil {
		log.Fatalf("[ERROR] preparing kv database: %v", err)
	}
	if err = app.PrepareHTMLTemplateStore(); err != nil {
		log.Fatalf("[ERROR] loading html templates: %v", err)
	}
	if err = app.LoadGateConf(); err != nil {
		log.Fatalf("[ERROR] loading gate conf: %v", err)
	}

	subscriberStore := &subscribers.SQLStore{DB: app.BackendSQLDBClients["main"]}
	if err = subscriberStore.EnsureSchema(rootCtx); err != nil {
		log.Fatalf("[ERROR] ensuring schema: %v", err)
	}

	listGate, err := gate.New(app.AppName, app.GateConf, app.BackendKVDBClient)
	if err != nil {
		log.Fatalf("[ERROR] building gate: %v", err)
	}

	app.PrepareThrottleBucketStore(5*time.Minute, 30*time.Minute)
	app.ThrottleBucketStore.SetBucketGroup("subscribe", &throttle.BucketConf{
		Burst:     5,
		Increment: 5,
		Period:    time.Minute,
	})
	app.ThrottleBucketStore.SetBucketGroup("unlock", &throttle.BucketConf{
		Burst:     10,
		Increment: 10,
		Period:    time.Minute,
	})

	router := routing.NewBaseRouter()

	router.Group("/api/", func(g *routing.RouteGroup) {
		g.Handle("POST invoices/preview", &render.PreviewHandler{})
		g.Handle("POST invoices/download", &render.DownloadHandler{})
		g.Handle("POST subscribe", &subscribers.SubscribeHandler{Store: subscriberStore},
			app.ThrottleBucketStore.LimitWrapper("subscribe"),
		)
		g.Handle("GET subscribers", &subscribers.ListHandler{Store: subscriberStore},
			listGate,
		)
		g.Handle("POST subscribers/unlock", &gate.UnlockHandler{Gate: listGate},
			app.ThrottleBucketStore.LimitWrapper("unlock"),
		)
	}, routing.WrapperFunc(routing.RecoverWrapper))

	router.Handle("GET /{$}", &web.LandingHandler{
		Templates: app.HTMLTemplateStore,
		AppName:   app.AppName,
	})

	app.PrepareWebService(app.Listen, router)

	if err = app.StartServices(); err != nil {
		log.Fatalf("[ERROR] starting services: %v", err)
	}
	if err = app.WaitServicesDone(); err != nil {
		log.Printf("[ERROR] service exited: %v", err)
	}
}
