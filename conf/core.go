package conf

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/invoicepress/invoicepress/db/kvdb"
	"github.com/invoicepress/invoicepress/db/kvdb/impls/redis"
	"github.com/invoicepress/invoicepress/db/sqldb"
	"github.com/invoicepress/invoicepress/db/sqldb/impls/mysql"
	"github.com/invoicepress/invoicepress/db/sqldb/impls/pgsql"
	"github.com/invoicepress/invoicepress/gate"
	"github.com/invoicepress/invoicepress/svc"
	"github.com/invoicepress/invoicepress/throttle"
	"github.com/invoicepress/invoicepress/tpl"
	"github.com/invoicepress/invoicepress/web"
)

// Core - common app config and resources
type Core struct {
	AppName string `json:"app_name"`
	Listen  string `json:"listen"` // HTTP Server Listen IP:PORT Address
	Host    string `json:"host"`   // HTTP Host. Can be used to generate public url endpoints

	AppRoot    string             `json:"-"` // Filled at startup
	RootCtx    context.Context    `json:"-"` // Global Context with RootCancel
	RootCancel context.CancelFunc `json:"-"` // CancelFunc for RootCtx

	WebService          *web.Service            `json:"-"` // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore   `json:"-"` // PrepareThrottleBucketStore
	SQLDBConfs          map[string]*sqldb.Conf  `json:"-"` // PrepareSQLDatabases
	BackendSQLDBClients map[string]sqldb.Client `json:"-"`
	KVDBConf            kvdb.Conf               `json:"-"` // PrepareKVDatabase
	BackendKVDBClient   kvdb.Client             `json:"-"`
	HTMLTemplateStore   *tpl.HTMLTemplateStore  `json:"-"` // PrepareHTMLTemplateStore
	GateConf            gate.Conf               `json:"-"` // LoadGateConf

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	if err := c.loadJSONConf(".core.json", c); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

func (c *Core) loadJSONConf(filename string, target any) error {
	confFilePath := filepath.Join(c.AppRoot, "config", filename)
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	return json.Unmarshal(confBytes, target)
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		if err := s.Start(); err != nil {
			return err
		}
		go func(s svc.Service) {
			c.done <- <-s.Done()
		}(s)
	}
	return nil
}

func (c *Core) WaitServicesDone() error {
	for range c.services {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

func (c *Core) PrepareWebService(addr string, router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, addr, router)
	c.AddService(c.WebService)
}

func (c *Core) PrepareThrottleBucketStore(cleanupCycle time.Duration, cleanupOlderThan time.Duration) {
	c.ThrottleBucketStore = throttle.NewBucketStore(c.RootCtx, cleanupCycle, cleanupOlderThan)
	c.AddService(c.ThrottleBucketStore)
}

// PrepareSQLDatabases - load config/.sql-databases.json, then build & init
// a client per configured database.
func (c *Core) PrepareSQLDatabases() error {
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err := c.loadJSONConf(".sql-databases.json", &c.SQLDBConfs); err != nil {
		return err
	}

	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()

	c.BackendSQLDBClients = make(map[string]sqldb.Client)
	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf.Type, sqlDBConf)
		if err != nil {
			return err
		}
		if err = dbClient.Init(); err != nil {
			return err
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

func (c *Core) PrepareKVDatabase() error {
	if err := c.loadJSONConf(".kv-database.json", &c.KVDBConf); err != nil {
		return err
	}
	switch c.KVDBConf.Type {
	case "redis":
		c.BackendKVDBClient = &redis.Client{Conf: &c.KVDBConf}
		if err := c.BackendKVDBClient.Init(); err != nil {
			return err
		}
	// case "memcached"
	default:
		return errors.New("unsupported key-value database type")
	}
	return nil
}

func (c *Core) PrepareHTMLTemplateStore() error {
	c.HTMLTemplateStore = tpl.NewHTMLTemplateStore()
	return c.HTMLTemplateStore.LoadBaseTemplates(
		filepath.Join(c.AppRoot, "templates", "html"),
	)
}

func (c *Core) LoadGateConf() error {
	return c.loadJSONConf(".gate.json", &c.GateConf)
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.BackendKVDBClient != nil {
		if err := c.BackendKVDBClient.Close(); err != nil {
			log.Println("[ERROR] Failed to close KV database client")
		}
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		if err := sqlDBClient.Close(); err != nil {
			log.Printf("[ERROR] Failed to close %q SQL DB client", name)
		}
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
