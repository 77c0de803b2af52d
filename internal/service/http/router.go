package httpsvc

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// RouterOptions — зависимости роутера помимо обработчика.
type RouterOptions struct {
	Templates *template.Template
	Metrics   *metrics.ShopMetrics
	Logger    *log.Entry
}

// NewRouter собирает gin.Engine со всеми маршрутами витрины.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "http")
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics(opts.Metrics), requestLogger(logger))
	if opts.Templates != nil {
		router.SetHTMLTemplate(opts.Templates)
	}

	router.GET("/", h.index)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.POST("/register", h.register)
	router.GET("/home", h.home)
	router.GET("/product/:id", h.productDetail)
	router.POST("/add_to_cart/:id", h.addToCart)
	router.GET("/cart", h.viewCart)
	router.POST("/checkout", h.placeOrder)
	router.GET("/aggregations", h.aggregations)
	router.GET("/aggregation/:name", h.aggregation)

	return router
}

// requestLogger пишет строку лога на каждый запрос.
func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request served")
		case status >= 400:
			entry.Warn("request served")
		default:
			entry.Info("request served")
		}
	}
}

// requestMetrics считает запросы по шаблону маршрута, а не по фактическому пути.
func requestMetrics(m *metrics.ShopMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestStarted()
		defer m.HTTPRequestFinished()

		c.Next()

		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
