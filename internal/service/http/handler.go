package httpsvc

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// AccountService — регистрация и вход.
type AccountService interface {
	Register(ctx context.Context, form domain.RegistrationForm) (domain.Customer, error)
	Authenticate(ctx context.Context, email, phone string) (domain.Session, error)
}

// CatalogService — чтение каталога.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

// CheckoutService — корзина и оформление заказа.
type CheckoutService interface {
	AddToCart(ctx context.Context, productID string, quantity int) (domain.CartConfirmation, error)
	ViewCart(ctx context.Context) (domain.CartView, error)
	CheckoutCurrent(ctx context.Context) (domain.OrderConfirmation, error)
}

// ReportService — отчёты.
type ReportService interface {
	Names() []domain.ReportName
	Run(ctx context.Context, name domain.ReportName) (domain.ReportResult, error)
}

// Handler обслуживает страницы и JSON-эндпоинты витрины.
type Handler struct {
	accounts AccountService
	catalog  CatalogService
	checkout CheckoutService
	reports  ReportService
	logger   *log.Entry
}

// NewHandler создаёт обработчик.
func NewHandler(accounts AccountService, catalog CatalogService, checkout CheckoutService, reports ReportService, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &Handler{
		accounts: accounts,
		catalog:  catalog,
		checkout: checkout,
		reports:  reports,
		logger:   logger,
	}
}

type loginRequest struct {
	Email string `form:"email" binding:"required"`
	Phone string `form:"phone" binding:"required"`
}

type addToCartRequest struct {
	Quantity *int `form:"quantity" binding:"required"`
}

func (h *Handler) index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	session, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Phone)
	if err != nil {
		h.writeError(c, "login", err)
		return
	}

	h.logger.WithField("customer_id", session.CustomerID).Debug("customer logged in")
	c.Redirect(http.StatusFound, "/home")
}

func (h *Handler) register(c *gin.Context) {
	var form domain.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.accounts.Register(c.Request.Context(), form); err != nil {
		h.writeError(c, "register", err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) home(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, "list_products", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"products": products})
}

func (h *Handler) productDetail(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if status, detail := statusFor(err); status == http.StatusNotFound {
			c.HTML(status, "not_found.html", gin.H{"detail": detail})
			return
		}
		h.writeError(c, "get_product", err)
		return
	}
	c.HTML(http.StatusOK, "product_detail.html", gin.H{"product": product})
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}

	ack, err := h.checkout.AddToCart(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		h.writeError(c, "add_to_cart", err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (h *Handler) viewCart(c *gin.Context) {
	view, err := h.checkout.ViewCart(c.Request.Context())
	if err != nil {
		h.writeError(c, "view_cart", err)
		return
	}
	c.HTML(http.StatusOK, "checkout.html", gin.H{
		"cart_details": view.Items,
		"total_price":  view.TotalPrice,
	})
}

func (h *Handler) placeOrder(c *gin.Context) {
	confirmation, err := h.checkout.CheckoutCurrent(c.Request.Context())
	if err != nil {
		h.writeError(c, "checkout", err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

func (h *Handler) aggregations(c *gin.Context) {
	c.HTML(http.StatusOK, "aggregations.html", gin.H{"reports": h.reports.Names()})
}

func (h *Handler) aggregation(c *gin.Context) {
	result, err := h.reports.Run(c.Request.Context(), domain.ReportName(c.Param("name")))
	if err != nil {
		h.writeError(c, "report", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
