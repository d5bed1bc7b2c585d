package http

import (
	"github.com/nats-io/nats.go"
	"github.com/smartstay/navigator/internal/adapters/postgres"
	"github.com/smartstay/navigator/internal/adapters/valkey"
	"github.com/smartstay/navigator/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Stays     *usecases.StayService
	Spots     *usecases.SpotService
	Events    *usecases.EventService
	Assist    *usecases.AssistService
	Translate *usecases.TranslateService
	Culture   *usecases.CultureService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}
