package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/logger"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/utils"
)

// respondCoreError maps the core's error kinds onto HTTP responses.
// Every rejected operation keeps its kind; only unknown errors collapse
// into a 500.
func respondCoreError(c *gin.Context, err error) {
	var forbidden *service.BookingForbiddenError
	switch {
	case errors.As(err, &forbidden):
		utils.Forbidden(c, forbidden.Error())
	case errors.Is(err, service.ErrInvalidTime):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateReport):
		utils.Conflict(c, err.Error())
	case errors.Is(err, service.ErrCancellationWindowExpired):
		utils.UnprocessableEntity(c, err.Error())
	case service.IsNotFound(err):
		utils.NotFound(c, err.Error())
	default:
		logger.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Unhandled core error")
		utils.InternalServerError(c, "Internal error")
	}
}
