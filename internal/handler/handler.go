package handler

import (
	"net/http"

	"github.com/bookclub/library-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	catalog    CatalogService
	membership MembershipService
	ledger     LedgerService
	notifier   NotifyService
	audit      Publisher
	log        *zap.Logger
}

func New(catalog CatalogService, membership MembershipService, ledger LedgerService, notifier NotifyService, audit Publisher, log *zap.Logger) *Handler {
	return &Handler{
		catalog:    catalog,
		membership: membership,
		ledger:     ledger,
		notifier:   notifier,
		audit:      audit,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
		jwtAuthentication,
	)

	api.GET("/books", h.ListBooks)
	api.POST("/books", h.CreateBook)
	api.GET("/books/:bookUid", h.GetBook)
	api.PUT("/books/:bookUid", h.UpdateBook)
	api.DELETE("/books/:bookUid", h.DeleteBook, adminOnly)

	api.GET("/readers", h.ListReaders)
	api.POST("/readers", h.CreateReader)
	api.GET("/readers/:readerUid", h.GetReader)
	api.PUT("/readers/:readerUid", h.UpdateReader)
	api.DELETE("/readers/:readerUid", h.DeleteReader, adminOnly)

	api.GET("/lendings", h.ListLendings)
	api.POST("/lendings", h.CreateLending)
	api.GET("/lendings/overdue", h.ListOverdueLendings)
	api.GET("/lendings/:lendingUid", h.GetLending)
	api.PUT("/lendings/:lendingUid/return", h.ReturnLending)
	api.DELETE("/lendings/:lendingUid", h.DeleteLending, adminOnly)

	api.POST("/notifications/overdue", h.NotifyOverdue)
	api.POST("/notifications/overdue/:lendingUid", h.NotifyOverdueOne)

	api.GET("/dashboard/stats", h.DashboardStats)
	api.GET("/audit-logs", h.ListAuditLogs, adminOnly)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
