package handlers

import (
	"cs2showroom/internal/config"
	"cs2showroom/internal/services"
	"cs2showroom/internal/steam"
	"cs2showroom/internal/store"
)

type Deps struct {
	ShowroomHandler *ShowroomHandler
	AdminHandler    *AdminHandler
}

func NewDeps(cfg config.Config) *Deps {
	st := store.NewFileStore(cfg.Store.DataFile)
	client := steam.NewClient(cfg.Steam)
	showroomSvc := services.NewShowroomService(st, client, cfg.Steam.SteamID)

	return &Deps{
		ShowroomHandler: &ShowroomHandler{Showroom: showroomSvc},
		AdminHandler:    &AdminHandler{Showroom: showroomSvc, Steam: cfg.Steam},
	}
}
