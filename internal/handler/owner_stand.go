package handler

// This file defines HTTP handlers for gallery owners laying out floor plans:
// creating hall maps under an event, placing individual stands and generating
// whole grids of stands in one call. Geometry is opaque to the booking core;
// it exists for floor plan rendering.

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/artishok/stand-booking/internal/model"
	"github.com/artishok/stand-booking/internal/repository"
)

// OwnerStandHandler bundles repositories for floor plan endpoints.
type OwnerStandHandler struct {
	Galleries *repository.GalleryRepo
	Events    *repository.EventRepo
	HallMaps  *repository.HallMapRepo
	Stands    *repository.StandRepo
}

// NewOwnerStandHandler constructs an OwnerStandHandler. All
// dependencies must be non-nil.
func NewOwnerStandHandler(galleries *repository.GalleryRepo, events *repository.EventRepo, hallMaps *repository.HallMapRepo, stands *repository.StandRepo) *OwnerStandHandler {
	if galleries == nil || events == nil || hallMaps == nil || stands == nil {
		panic("nil repository passed to NewOwnerStandHandler")
	}
	return &OwnerStandHandler{Galleries: galleries, Events: events, HallMaps: hallMaps, Stands: stands}
}

type createHallMapReq struct {
	Name string `json:"name"`
}

type hallMapResp struct {
	ID      uint64 `json:"id"`
	EventID uint64 `json:"event_id"`
	Name    string `json:"name"`
}

type createStandReq struct {
	StandNumber string `json:"stand_number"`
	PositionX   int32  `json:"position_x"`
	PositionY   int32  `json:"position_y"`
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	StandType   string `json:"stand_type"`
}

type standGridReq struct {
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	CellW     uint32 `json:"cell_width"`
	CellH     uint32 `json:"cell_height"`
	Gap       int32  `json:"gap"`
	StandType string `json:"stand_type"`
}

type standResp struct {
	ID          uint64 `json:"id"`
	HallMapID   uint64 `json:"hall_map_id"`
	StandNumber string `json:"stand_number"`
	PositionX   int32  `json:"position_x"`
	PositionY   int32  `json:"position_y"`
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	StandType   string `json:"stand_type"`
	Status      string `json:"status"`
}

func toStandResp(s model.Stand) standResp {
	return standResp{
		ID:          s.ID,
		HallMapID:   s.HallMapID,
		StandNumber: s.StandNumber,
		PositionX:   s.PositionX,
		PositionY:   s.PositionY,
		Width:       s.Width,
		Height:      s.Height,
		StandType:   s.StandType,
		Status:      s.Status,
	}
}

// validStandType normalizes a stand type, defaulting to STANDARD.
func validStandType(raw string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	switch t {
	case "":
		return model.StandTypeStandard, true
	case model.StandTypeStandard, model.StandTypePremium, model.StandTypeCorner:
		return t, true
	}
	return "", false
}

// requireEventOwned loads the event and verifies the caller owns its
// gallery. Errors are already written to the response when non-nil.
func (h *OwnerStandHandler) requireEventOwned(c echo.Context, eventID, ownerID uint64) (*model.ExhibitionEvent, error) {
	ctx := c.Request().Context()
	e, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	if _, err := h.Galleries.GetByIDAndOwner(ctx, e.GalleryID, ownerID); err != nil {
		if err == repository.ErrGalleryNotFound {
			return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
	}
	return e, nil
}

// CreateHallMap handles POST /v1/owner/events/:id/hall-maps.
func (h *OwnerStandHandler) CreateHallMap(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createHallMapReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	if _, err := h.requireEventOwned(c, eventID, ownerID); err != nil {
		return err
	}

	m := &model.HallMap{EventID: eventID, Name: req.Name}
	if err := h.HallMaps.Create(c.Request().Context(), m); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall map name already used for this event"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall map failed"})
	}
	return c.JSON(http.StatusCreated, hallMapResp{ID: m.ID, EventID: m.EventID, Name: m.Name})
}

// EventHallMaps handles GET /v1/owner/events/:id/hall-maps.
func (h *OwnerStandHandler) EventHallMaps(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if _, err := h.requireEventOwned(c, eventID, ownerID); err != nil {
		return err
	}
	maps, err := h.HallMaps.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall maps"})
	}
	out := make([]hallMapResp, 0, len(maps))
	for _, m := range maps {
		out = append(out, hallMapResp{ID: m.ID, EventID: m.EventID, Name: m.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// CreateStand handles POST /v1/owner/hall-maps/:id/stands. It places a
// single stand on the hall map.
func (h *OwnerStandHandler) CreateStand(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallMapID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req createStandReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.StandNumber = strings.TrimSpace(req.StandNumber)
	if req.StandNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stand_number required"})
	}
	standType, ok := validStandType(req.StandType)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stand_type"})
	}
	if req.Width == 0 || req.Height == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "width/height required"})
	}

	ctx := c.Request().Context()
	if _, err := h.HallMaps.EventIDForOwner(ctx, hallMapID, ownerID); err != nil {
		switch err {
		case repository.ErrHallMapNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall map not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall map"})
	}

	s := &model.Stand{
		HallMapID:   hallMapID,
		StandNumber: req.StandNumber,
		PositionX:   req.PositionX,
		PositionY:   req.PositionY,
		Width:       req.Width,
		Height:      req.Height,
		StandType:   standType,
	}
	if err := h.Stands.Create(ctx, s); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "stand_number already used on this hall map"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create stand failed"})
	}
	return c.JSON(http.StatusCreated, toStandResp(*s))
}

// CreateStandGrid handles POST /v1/owner/hall-maps/:id/stands/grid. It
// generates rows x cols stands laid out on a regular grid. Stand
// numbers follow the "A-1" convention: letter row label, numeric
// column, both derived from grid position.
func (h *OwnerStandHandler) CreateStandGrid(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallMapID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req standGridReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rows < 1 || req.Cols < 1 || req.Rows*req.Cols > 2000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows/cols out of range"})
	}
	if req.CellW == 0 || req.CellH == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cell_width/cell_height required"})
	}
	if req.Gap < 0 {
		req.Gap = 0
	}
	standType, ok := validStandType(req.StandType)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stand_type"})
	}

	ctx := c.Request().Context()
	if _, err := h.HallMaps.EventIDForOwner(ctx, hallMapID, ownerID); err != nil {
		switch err {
		case repository.ErrHallMapNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall map not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall map"})
	}

	stands := make([]model.Stand, 0, req.Rows*req.Cols)
	stepX := int32(req.CellW) + req.Gap
	stepY := int32(req.CellH) + req.Gap
	for row := 0; row < req.Rows; row++ {
		for col := 0; col < req.Cols; col++ {
			stands = append(stands, model.Stand{
				HallMapID:   hallMapID,
				StandNumber: fmt.Sprintf("%s-%d", indexToRowLabel(row), col+1),
				PositionX:   int32(col) * stepX,
				PositionY:   int32(row) * stepY,
				Width:       req.CellW,
				Height:      req.CellH,
				StandType:   standType,
			})
		}
	}
	if err := h.Stands.CreateBulk(ctx, stands); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "grid overlaps existing stand numbers"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create stands failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(stands)})
}

// HallMapStands handles GET /v1/owner/hall-maps/:id/stands.
func (h *OwnerStandHandler) HallMapStands(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallMapID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.HallMaps.EventIDForOwner(ctx, hallMapID, ownerID); err != nil {
		switch err {
		case repository.ErrHallMapNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall map not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load hall map"})
	}
	stands, err := h.Stands.ListByHallMap(ctx, hallMapID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stands"})
	}
	out := make([]standResp, 0, len(stands))
	for _, s := range stands {
		out = append(out, toStandResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// indexToRowLabel converts a zero-based index to an alphabetical row
// label like A, B, ..., Z, AA.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
