package routes

import (
	"github.com/theleywin/Backend-DevConnect/src/config"
	"github.com/theleywin/Backend-DevConnect/src/services"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

// Deps carries everything the route groups hand to their controllers
type Deps struct {
	Config      *config.Config
	Store       store.Store
	Auth        *services.AuthService
	Connections *services.ConnectionService
	Feed        *services.FeedService
	Profiles    *services.ProfileService
}
