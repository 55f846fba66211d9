package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/surershelf/task-manager-api/config"
	"github.com/surershelf/task-manager-api/internal/application"
	pginfra "github.com/surershelf/task-manager-api/internal/infrastructure/postgres"
	"github.com/surershelf/task-manager-api/pkg/helpers"
)

// Process-wide components set once by cmd/main.go and read by the router
// when it wires modules. Optional integrations stay nil when not configured.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *pginfra.DB
	redisClient *redis.Client
	gcsClient   *storage.Client
	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetDB(d *pginfra.DB)        { db = d }
func GetDB() *pginfra.DB         { return db }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
func SetGCS(s *storage.Client)   { gcsClient = s }
func GetGCS() *storage.Client    { return gcsClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

func GetClock() application.Clock { return application.SystemClock{} }
