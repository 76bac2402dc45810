package handlers

import (
	"errors"
	"strconv"
	"strings"

	"cs2showroom/internal/config"
	"cs2showroom/internal/inventory"
	applog "cs2showroom/internal/log"
	"cs2showroom/internal/services"
	"cs2showroom/internal/store"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Showroom *services.ShowroomService
	Steam    config.SteamConfig
}

// GET /manage
func (h *AdminHandler) Manage(c *fiber.Ctx) error {
	doc, err := h.Showroom.Current()
	if err != nil {
		applog.Error(c, "admin.manage.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
	}
	return h.renderManage(c, doc, "", "", "")
}

func (h *AdminHandler) renderManage(c *fiber.Ctx, doc store.Document, errMsg, pastedProtected, pastedMain string) error {
	return render(c, "admin", fiber.Map{
		"Skins":              doc.Skins,
		"Total":              doc.Total,
		"TotalBeforeFilters": doc.TotalBeforeFilters,
		"Err":                errMsg,
		"PastedProtected":    pastedProtected,
		"PastedMain":         pastedMain,
		"AccessTokenURL":     h.Steam.AccessTokenURL,
		"InventoryURLs":      h.Steam.InventoryURLs(),
	})
}

// POST /manage/refresh
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	doc, err := h.Showroom.RefreshFromAPI(c.Context())
	if err != nil {
		applog.Error(c, "admin.refresh.fail", err, nil)
		prior, loadErr := h.Showroom.Current()
		if loadErr != nil {
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
		}
		return h.renderManage(c, prior, "Steam API refresh failed: "+err.Error(), "", "")
	}
	applog.Audit(c, "admin.refresh", map[string]any{"total": doc.Total})
	return c.Redirect("/manage")
}

// POST /manage/import
func (h *AdminHandler) Import(c *fiber.Ctx) error {
	protectedJSON := strings.TrimSpace(c.FormValue("protected_json"))
	mainJSON := strings.TrimSpace(c.FormValue("main_json"))

	blobs := make([]string, 0, 2)
	for _, blob := range []string{protectedJSON, mainJSON} {
		if blob != "" {
			blobs = append(blobs, blob)
		}
	}
	raw := strings.Join(blobs, "\n")

	doc, err := h.Showroom.RefreshFromManual(raw)
	if err != nil {
		var perr *inventory.ParseError
		msg := "Import failed"
		if errors.As(err, &perr) {
			msg = perr.Error()
		}
		applog.Error(c, "admin.import.fail", err, nil)
		prior, loadErr := h.Showroom.Current()
		if loadErr != nil {
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load inventory"})
		}
		return h.renderManage(c, prior, msg, protectedJSON, mainJSON)
	}
	applog.Audit(c, "admin.import", map[string]any{"total": doc.Total})
	return c.Redirect("/manage")
}

// POST /manage/selection
func (h *AdminHandler) SaveSelection(c *fiber.Ctx) error {
	args := c.Request().PostArgs()

	update := services.SelectionUpdate{
		ClearAll: c.FormValue("clear_all") == "true",
		Selected: map[int]bool{},
		Prices:   map[int]string{},
		Notes:    map[int]string{},
	}
	for _, v := range args.PeekMulti("selected_skins") {
		if idx, err := strconv.Atoi(string(v)); err == nil {
			update.Selected[idx] = true
		}
	}
	args.VisitAll(func(key, value []byte) {
		if idx, ok := indexedField(string(key), "price_"); ok {
			update.Prices[idx] = string(value)
		}
		if idx, ok := indexedField(string(key), "note_"); ok {
			update.Notes[idx] = string(value)
		}
	})
	if len(update.Selected) == 0 {
		update.ClearAll = true
	}

	doc, err := h.Showroom.SaveSelection(update)
	if err != nil {
		applog.Error(c, "admin.selection.save.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save selection"})
	}
	applog.Audit(c, "admin.selection.save", map[string]any{"selected": len(update.Selected), "total": doc.Total})
	return c.Redirect("/manage")
}

func indexedField(key, prefix string) (int, bool) {
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(key[len(prefix):])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
