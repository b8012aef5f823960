package bucket

import (
	"math"
	"net/http"
	"net/url"
	"strings"

	"dev-launcher/core/logger"
	"dev-launcher/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves bucket objects over HTTP.
type Handler struct {
	service *Service
	browse  bool
}

// NewHandler creates a new HTTP handler. Listings are only served when browse
// is set.
func NewHandler(service *Service, browse bool) *Handler {
	return &Handler{service: service, browse: browse}
}

// RegisterRoutes registers the bucket routes.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/*", h.HandleObject)
}

// HandleObject streams the object at the request path, or lists a prefix.
// @Summary Get Object
// @Description Streams the object stored under the path. A path ending in "/" lists keys under that prefix in development mode.
// @Tags bucket
// @Produce octet-stream,json
// @Param key path string true "Object key or prefix"
// @Success 200 {file} file "Object content"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /{key} [get]
func (h *Handler) HandleObject(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	if key == "" || strings.HasSuffix(key, "/") {
		if !h.browse {
			return fiber.ErrNotFound
		}
		keys, err := h.service.List(c.Context(), key)
		if err != nil {
			l.Error("Listing failed", zap.String("prefix", key), zap.Error(err))
			return err
		}
		return c.JSON(fiber.Map{
			"bucket": h.service.Bucket(),
			"prefix": key,
			"keys":   keys,
		})
	}

	info, body, err := h.service.Open(c.Context(), key)
	if err != nil {
		if storage.IsNotFound(err) {
			return fiber.ErrNotFound
		}
		l.Error("Object read failed", zap.String("key", key), zap.Error(err))
		return err
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	if info.ETag != "" {
		c.Set(fiber.HeaderETag, `"`+info.ETag+`"`)
	}
	if !info.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
	}
	return c.SendStream(body, streamSize(info.Size))
}

// streamSize converts an object size for SendStream; -1 streams chunked when
// the size is unknown or does not fit in an int.
func streamSize(size int64) int {
	if size < 0 || uint64(size) > math.MaxInt {
		return -1
	}
	return int(size)
}
