package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/bookclub/library-service/pkg/auth"
	"github.com/bookclub/library-service/pkg/logger"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	authorizationHeader = "Authorization"
	bearer              = "Bearer "
)

func jwtAuthentication(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get(authorizationHeader)
		if authorization == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
		}
		if !strings.HasPrefix(authorization, bearer) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
		}
		tokenStr := strings.TrimPrefix(authorization, bearer)
		claims := new(auth.Claims)

		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return auth.JWTKey, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
		}
		if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
			return echo.NewHTTPError(http.StatusUnauthorized, "TokenExpired")
		}

		req := c.Request()
		ctx := auth.SetAuthContext(req.Context(), claims.Profile.Username, claims.Profile.Role)
		req = req.WithContext(ctx)
		c.SetRequest(req)

		return next(c)
	}
}

func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !auth.IsAdmin(c.Request().Context()) {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

func newRateLimiterMW(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func requestLoggerConfig() middleware.RequestLoggerConfig {
	cfg := logger.Log{LogLevel: zapcore.DebugLevel, Sink: ""}
	log := logger.NewLogger(cfg, "echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}
