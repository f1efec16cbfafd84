// Package steplib provides prebuilt, mergeable step libraries for common
// backends. Each library returns its own registry so callers compose
// exactly the steps their configured resources need:
//
//	reg := basil.NewRegistry[steplib.World]()
//	reg.Merge(steplib.SQLSteps("db"))
//	reg.Merge(steplib.RedisSteps("cache"))
package steplib

import (
	"database/sql"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// Clients holds the shared backend connections, dialed once at run setup
// and keyed by resource name.
type Clients struct {
	DB             map[string]*sql.DB
	Redis          map[string]*redis.Client
	WS             map[string]*websocket.Conn
	KafkaProducers map[string]sarama.SyncProducer
	KafkaConsumers map[string]sarama.Consumer
}

// NewClients returns an empty client set.
func NewClients() *Clients {
	return &Clients{
		DB:             make(map[string]*sql.DB),
		Redis:          make(map[string]*redis.Client),
		WS:             make(map[string]*websocket.Conn),
		KafkaProducers: make(map[string]sarama.SyncProducer),
		KafkaConsumers: make(map[string]sarama.Consumer),
	}
}

// World is the per-scenario state the step libraries execute against: a
// reference to the shared clients plus whatever the scenario accumulated
// so far. A fresh World is constructed at every scenario start.
type World struct {
	*Clients

	lastKafkaMessage []byte
}

// NewWorld returns a world factory over a shared client set, suitable
// for basil.WithWorld.
func NewWorld(c *Clients) func() (*World, error) {
	return func() (*World, error) {
		return &World{Clients: c}, nil
	}
}

func (w *World) db(name string) (*sql.DB, error) {
	db, ok := w.DB[name]
	if !ok {
		return nil, fmt.Errorf("database resource %q is not configured", name)
	}
	return db, nil
}

func (w *World) redis(name string) (*redis.Client, error) {
	c, ok := w.Redis[name]
	if !ok {
		return nil, fmt.Errorf("redis resource %q is not configured", name)
	}
	return c, nil
}

func (w *World) ws(name string) (*websocket.Conn, error) {
	c, ok := w.WS[name]
	if !ok {
		return nil, fmt.Errorf("websocket resource %q is not configured", name)
	}
	return c, nil
}
