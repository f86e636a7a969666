package http

import (
	"context"
	"errors"
	"fmt"
	gohttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/fairsplit/internal/config"
	"github.com/hxuan190/fairsplit/internal/expense"
	"github.com/hxuan190/fairsplit/internal/http/httputil"
	"github.com/hxuan190/fairsplit/internal/http/middlewares"
	"github.com/hxuan190/fairsplit/internal/services"
)

const (
	API_VERSION  = "v1"
	HTTP_SERVICE = "http-service"
)

type HTTPService struct {
	container.BaseDIInstance

	logger      *services.ServiceLogger
	expenseSvc  *expense.Service
	rateLimiter *middlewares.RateLimiter
	server      *gohttp.Server
	conf        *config.GeneralConfig

	handlers []httputil.IHttpHandler
}

func (svc *HTTPService) ID() string {
	return HTTP_SERVICE
}

func (svc *HTTPService) Configure(c container.IContainer) error {
	svc.conf = c.GetConfig(config.GENERAL_CONFIG_KEY).(*config.GeneralConfig)
	if svc.conf == nil {
		return errors.New("invalid server config")
	}
	splitConf := c.GetConfig(config.SPLIT_CONFIG_KEY).(*config.SplitConfig)
	if splitConf == nil {
		return errors.New("invalid split config")
	}

	svc.setup(c.Instance(expense.EXPENSE_SERVICE).(*expense.Service), splitConf)
	return nil
}

func (svc *HTTPService) setup(expenseSvc *expense.Service, splitConf *config.SplitConfig) {
	svc.logger = services.NewServiceLogger(svc)
	svc.expenseSvc = expenseSvc
	svc.rateLimiter = middlewares.NewRateLimiter(splitConf.RateLimit, splitConf.RateBurst)

	svc.handlers = []httputil.IHttpHandler{
		NewSplitHandler(svc.expenseSvc),
		NewCurrencyHandler(svc.expenseSvc.DefaultCurrency()),
	}
}

// Router builds the gin engine with every middleware and route mounted.
func (svc *HTTPService) Router() *gin.Engine {
	if svc.conf != nil && !svc.conf.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsConf := cors.DefaultConfig()
	corsConf.AllowAllOrigins = true
	corsConf.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConf))

	r.Use(middlewares.MetricsMiddleware())
	r.Use(svc.rateLimiter.RateLimitMiddleware())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(gohttp.StatusOK, gin.H{
			"status":      "ok",
			"persistence": svc.expenseSvc.PersistenceEnabled(),
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("api")
	pub := api.Group(API_VERSION)
	priv := api.Group(API_VERSION)

	admin := api.Group(fmt.Sprintf("%s/admin", API_VERSION))

	httputil.Mount(svc.handlers, pub, priv, admin)
	return r
}

func (svc *HTTPService) Start() error {
	svc.server = &gohttp.Server{
		Addr:              svc.conf.HTTPHost + ":" + svc.conf.HTTPPort,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	svc.logger.Info().Str("host", svc.conf.HTTPHost).Str("port", svc.conf.HTTPPort).Msg("http server started")

	if err := svc.server.ListenAndServe(); err != nil && err != gohttp.ErrServerClosed {
		return err
	}

	return nil
}

func (svc *HTTPService) Stop() error {
	if svc.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := svc.server.Shutdown(ctx); err != nil {
		svc.logger.Error().Err(err).Msg("failed to stop http server")
		return err
	}
	svc.logger.Info().Msg("http server stopped gracefully")
	return nil
}
