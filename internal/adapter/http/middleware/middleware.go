package middleware

import (
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

type Middleware struct {
	service string
	log     logger.Logger
}

func NewMiddleware(service string, log logger.Logger) *Middleware {
	return &Middleware{
		service: service,
		log:     log,
	}
}
