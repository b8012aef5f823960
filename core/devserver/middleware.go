package devserver

import (
	"errors"
	"time"

	"dev-launcher/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// requestLogger logs every request with its ray id. Only installed in
// development mode.
func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()

		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		l.Info("Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}

// errorHandler renders errors as JSON. Development responses carry the error
// text; production responses only the status text.
func errorHandler(logg *zap.Logger, dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		msg := statusMessage(code)
		if dev {
			msg = err.Error()
		} else if code >= fiber.StatusInternalServerError {
			logger.WithRayID(logg, c).Error("Request failed", zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}

func statusMessage(code int) string {
	if msg := utils.StatusMessage(code); msg != "" {
		return msg
	}
	return "Error"
}
