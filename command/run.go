package command

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/IBM/sarama"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tomatool/basil"
	"github.com/tomatool/basil/config"
	"github.com/tomatool/basil/feature"
	"github.com/tomatool/basil/formatter"
	"github.com/tomatool/basil/internal/runlog"
	"github.com/tomatool/basil/steplib"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run the feature suite",
	ArgsUsage: "[feature paths...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "basil.yml",
			Usage:   "Configuration file path",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Override output format (pretty, events)",
		},
	},
	Action: runAction,
}

func runAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	paths := cfg.Features.Paths
	if c.Args().Len() > 0 {
		paths = c.Args().Slice()
	}

	// Configuration errors abort here, before any test event is emitted.
	var features []*feature.Feature
	for _, path := range paths {
		fs, err := feature.LoadDir(path)
		if err != nil {
			return err
		}
		features = append(features, fs...)
	}

	clients, registry, cleanup, err := setupResources(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	format := cfg.Settings.Output
	if c.String("output") != "" {
		format = c.String("output")
	}
	observer, err := formatter.New(format, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.Settings.RunLog {
		rc, err := runlog.New()
		if err != nil {
			return err
		}
		f, err := rc.CreateLogFile("events")
		if err != nil {
			return err
		}
		defer f.Close()
		log.Debug().Str("dir", rc.Dir).Msg("run log enabled")
		observer = formatter.Multi(observer, formatter.NewEvents(f))
	}

	suite := basil.NewSuite(registry, observer, basil.WithWorld(steplib.NewWorld(clients)))
	tally := suite.Run(features)

	if tally.Failed() {
		return cli.Exit("", 1)
	}
	return nil
}

// setupResources dials every configured backend and merges the matching
// step libraries into one registry.
func setupResources(cfg *config.Config) (*steplib.Clients, *basil.Registry[steplib.World], func(), error) {
	clients := steplib.NewClients()
	registry := basil.NewRegistry[steplib.World]()
	var closers []func()

	cleanup := func() {
		for _, fn := range closers {
			fn()
		}
	}

	for name, res := range cfg.Resources {
		log.Debug().Str("resource", name).Str("type", res.Type).Msg("connecting resource")

		switch res.Type {
		case "postgres":
			db, err := sql.Open("postgres", res.DSN)
			if err != nil {
				cleanup()
				return nil, nil, nil, fmt.Errorf("connecting to %s: %w", name, err)
			}
			if err := db.Ping(); err != nil {
				cleanup()
				return nil, nil, nil, fmt.Errorf("resource %s not ready: %w", name, err)
			}
			clients.DB[name] = db
			closers = append(closers, func() { db.Close() })
			registry.Merge(steplib.SQLSteps(name))

		case "redis":
			client := redis.NewClient(&redis.Options{
				Addr:     res.Addr,
				Password: res.Password,
				DB:       res.DB,
			})
			clients.Redis[name] = client
			closers = append(closers, func() { client.Close() })
			registry.Merge(steplib.RedisSteps(name))

		case "websocket":
			conn, _, err := websocket.DefaultDialer.Dial(res.URL, nil)
			if err != nil {
				cleanup()
				return nil, nil, nil, fmt.Errorf("dialing %s: %w", name, err)
			}
			clients.WS[name] = conn
			closers = append(closers, func() { conn.Close() })
			registry.Merge(steplib.WebSocketSteps(name))

		case "kafka":
			kcfg := sarama.NewConfig()
			kcfg.Producer.Return.Successes = true
			producer, err := sarama.NewSyncProducer(res.Brokers, kcfg)
			if err != nil {
				cleanup()
				return nil, nil, nil, fmt.Errorf("creating producer for %s: %w", name, err)
			}
			consumer, err := sarama.NewConsumer(res.Brokers, kcfg)
			if err != nil {
				producer.Close()
				cleanup()
				return nil, nil, nil, fmt.Errorf("creating consumer for %s: %w", name, err)
			}
			clients.KafkaProducers[name] = producer
			clients.KafkaConsumers[name] = consumer
			closers = append(closers, func() { producer.Close(); consumer.Close() })
			registry.Merge(steplib.KafkaSteps(name))
		}
	}

	return clients, registry, cleanup, nil
}
