package handlers

import (
	applog "cs2showroom/internal/log"
	"cs2showroom/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ShowroomHandler serves the public showroom page with the operator's
// selected items.
type ShowroomHandler struct {
	Showroom *services.ShowroomService
}

// GET /
func (h *ShowroomHandler) Index(c *fiber.Ctx) error {
	skins, err := h.Showroom.SelectedItems()
	if err != nil {
		applog.Error(c, "showroom.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	return render(c, "index", fiber.Map{
		"Skins":   skins,
		"Total":   len(skins),
		"Filters": services.FilterCounts(skins),
	})
}
