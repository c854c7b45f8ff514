package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"jalin/components/connection"
	"jalin/components/notification"
	"jalin/components/suggestion"
	"jalin/components/user"
	"jalin/config"
	"jalin/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	server         *gin.Engine
	ctx            context.Context
	addr           string
	verbosityLevel int
	limiter        *ratelimit.Bucket
)

func showHelp() {
	fmt.Printf("Usage:%s {params}\n", os.Args[0])
	fmt.Println("      -a {listen addr}")
	fmt.Println("      -h (show help info)")
	fmt.Println("      -v {0-2} (verbosity level, default 0)")
}

func parse() bool {
	flag.StringVar(&addr, "a", "", "address to use")
	flag.IntVar(&verbosityLevel, "v", -1, "verbosity level, higher value - more logs")
	help := flag.Bool("h", false, "help info")
	flag.Parse()

	if *help {
		return false
	}
	return true
}

func main() {
	if !parse() {
		showHelp()
		os.Exit(-1)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Flags win over config file and env
	if addr == "" {
		addr = cfg.Addr
	}
	if verbosityLevel < 0 {
		verbosityLevel = cfg.Verbosity
	}

	logger := utils.InitLogger(verbosityLevel)
	logger.Info(fmt.Sprintf("verbosity level is: %d", verbosityLevel))

	ctx = context.TODO()

	// Connect to MongoDB
	mongoconn := options.Client().ApplyURI(cfg.MongoURI)
	mongoclient, err := mongo.NewClient(mongoconn)
	if err != nil {
		panic(err)
	}

	err = mongoclient.Connect(ctx)
	if err != nil {
		panic(err)
	}

	if err := mongoclient.Ping(ctx, readpref.Primary()); err != nil {
		panic(err)
	}

	logger.Info("MongoDB successfully connected...")

	// Redis is optional, suggestion results just go uncached without it
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic(err)
		}
		logger.Info("Redis successfully connected...")
	}

	server = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	server.Use(cors.New(corsConfig))

	limiter = ratelimit.NewBucketWithRate(100, 100)

	userRoute := user.NewUserRoute(mongoclient, cfg.Database, ctx, logger, limiter)
	userRoute.InitRouteTo(server)

	notifRoute := notification.NewNotifRoute(mongoclient, cfg.Database, ctx, logger, limiter)
	notifRoute.InitRouteTo(server)

	connectionRoute := connection.NewConnectionRoute(userRoute.GetUserService(), notifRoute.GetNotifService(), rdb, ctx, logger, limiter)
	connectionRoute.InitRouteTo(server)

	suggestionRoute := suggestion.NewSuggestionRoute(userRoute.GetUserService(), rdb, ctx, logger, limiter)
	suggestionRoute.InitRouteTo(server)

	server.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/ping/")
	})
	server.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	server.Run(addr)
}
