package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/everFinance/names"
	"github.com/everFinance/names/schema"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:  "names",
		Usage: "account names marketplace with escrowed balances",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "yaml config file, flags are ignored when set", EnvVars: []string{"CONFIG"}},
			&cli.StringFlag{Name: "self", Value: "names", Usage: "operator account", EnvVars: []string{"SELF"}},
			&cli.StringFlag{Name: "ledger_node", Value: "http://127.0.0.1:8888", Usage: "ledger node gateway url", EnvVars: []string{"LEDGER_NODE"}},
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/names?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite db dir path", EnvVars: []string{"SQLITE_DIR"}},
			&cli.IntFlag{Name: "quote_cache_ttl", Value: 30, Usage: "price quote cache ttl in seconds", EnvVars: []string{"QUOTE_CACHE_TTL"}},

			&cli.BoolFlag{Name: "use_s3", Value: false, Usage: "run with s3 store", EnvVars: []string{"USE_S3"}},
			&cli.StringFlag{Name: "s3_acc_key", Usage: "s3 access key", EnvVars: []string{"S3_ACC_KEY"}},
			&cli.StringFlag{Name: "s3_secret_key", Usage: "s3 secret key", EnvVars: []string{"S3_SECRET_KEY"}},
			&cli.StringFlag{Name: "s3_prefix", Value: "names", Usage: "s3 bucket name prefix", EnvVars: []string{"S3_PREFIX"}},
			&cli.StringFlag{Name: "s3_region", Value: "ap-northeast-1", Usage: "s3 bucket region", EnvVars: []string{"S3_REGION"}},
			&cli.StringFlag{Name: "s3_endpoint", Usage: "s3 compatible endpoint", EnvVars: []string{"S3_ENDPOINT"}},

			&cli.BoolFlag{Name: "use_aliyun", Value: false, Usage: "run with aliyun oss store", EnvVars: []string{"USE_ALIYUN"}},
			&cli.StringFlag{Name: "aliyun_endpoint", Usage: "aliyun oss endpoint", EnvVars: []string{"ALIYUN_ENDPOINT"}},
			&cli.StringFlag{Name: "aliyun_acc_key", Usage: "aliyun access key", EnvVars: []string{"ALIYUN_ACC_KEY"}},
			&cli.StringFlag{Name: "aliyun_secret_key", Usage: "aliyun secret key", EnvVars: []string{"ALIYUN_SECRET_KEY"}},
			&cli.StringFlag{Name: "aliyun_prefix", Value: "names", Usage: "aliyun bucket name prefix", EnvVars: []string{"ALIYUN_PREFIX"}},

			&cli.BoolFlag{Name: "use_mongodb", Value: false, Usage: "run with mongodb store", EnvVars: []string{"USE_MONGODB"}},
			&cli.StringFlag{Name: "mongodb_uri", Value: "mongodb://127.0.0.1:27017", EnvVars: []string{"MONGODB_URI"}},
			&cli.StringFlag{Name: "mongodb_db", Value: "names", EnvVars: []string{"MONGODB_DB"}},

			&cli.BoolFlag{Name: "use_kafka", Value: false, Usage: "export audit events to kafka", EnvVars: []string{"USE_KAFKA"}},
			&cli.StringFlag{Name: "kafka_uri", Value: "127.0.0.1:9092", EnvVars: []string{"KAFKA_URI"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
			&cli.StringFlag{Name: "metric_port", Value: ":9000", EnvVars: []string{"METRIC_PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	s := names.New(cfg)
	s.Run(cfg.Port, cfg.MetricPort)

	<-signals
	s.Close()
	return nil
}

func loadConfig(c *cli.Context) (schema.Config, error) {
	if path := c.String("config"); path != "" {
		cfg := schema.Config{}
		by, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		err = yaml.Unmarshal(by, &cfg)
		return cfg, err
	}

	return schema.Config{
		Self:          c.String("self"),
		LedgerNode:    c.String("ledger_node"),
		Port:          c.String("port"),
		MetricPort:    c.String("metric_port"),
		Mysql:         c.String("mysql"),
		UseSqlite:     c.Bool("use_sqlite"),
		SqliteDir:     c.String("sqlite_dir"),
		QuoteCacheTTL: c.Int("quote_cache_ttl"),
		BoltDir:       c.String("db_dir"),
		S3KV: schema.S3KV{
			UseS3:     c.Bool("use_s3"),
			AccKey:    c.String("s3_acc_key"),
			SecretKey: c.String("s3_secret_key"),
			Prefix:    c.String("s3_prefix"),
			Region:    c.String("s3_region"),
			Endpoint:  c.String("s3_endpoint"),
		},
		AliyunKV: schema.AliyunKV{
			UseAliyun: c.Bool("use_aliyun"),
			Endpoint:  c.String("aliyun_endpoint"),
			AccKey:    c.String("aliyun_acc_key"),
			SecretKey: c.String("aliyun_secret_key"),
			Prefix:    c.String("aliyun_prefix"),
		},
		MongoDBKV: schema.MongoDBKV{
			UseMongoDB: c.Bool("use_mongodb"),
			Uri:        c.String("mongodb_uri"),
			DbName:     c.String("mongodb_db"),
		},
		Kafka: schema.Kafka{
			Start: c.Bool("use_kafka"),
			Uri:   c.String("kafka_uri"),
		},
	}, nil
}
