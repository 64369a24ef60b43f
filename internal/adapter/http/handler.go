package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"soulledger/internal/app/auth"
	"soulledger/internal/app/authority"
	catalogapp "soulledger/internal/app/catalog"
	"soulledger/internal/app/history"
	"soulledger/internal/app/ownership"
	"soulledger/internal/app/pass"
	"soulledger/internal/app/ports"
	"soulledger/internal/app/progression"
	"soulledger/internal/app/status"
	"soulledger/internal/domain/asset"
	"soulledger/internal/domain/catalog"
	"soulledger/internal/domain/soul"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const principalIDHeader = "X-Principal-ID"
const principalKeyHeader = "X-Principal-Key"

type Handler struct {
	RegisterUC    auth.RegisterUseCase
	AuthUC        auth.VerifyUseCase
	ProgressionUC progression.UseCase
	CatalogUC     catalogapp.UseCase
	PassUC        pass.UseCase
	StatusUC      status.UseCase
	HistoryUC     history.UseCase
	KPI           kpiSnapshotProvider
	AllowOrigin   string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))
	s.GET("/healthz", h.healthz)
	s.GET("/ops/kpi", h.kpi)

	api := s.Group("/api")
	api.POST("/principals/register", h.register)

	events := api.Group("/events")
	events.POST("", h.createEvent)
	events.POST("/:event/active", h.setEventActive)
	events.POST("/:event/quests", h.createQuest)
	events.GET("/:event/quests/:quest", h.getQuest)

	souls := api.Group("/souls")
	souls.POST("", h.initialize)
	souls.GET("/:asset", h.status)
	souls.GET("/:asset/history", h.history)
	souls.POST("/:asset/complete", h.complete)
	souls.POST("/:asset/evolve", h.evolve)
	souls.POST("/:asset/grant", h.grant)
	souls.POST("/:asset/wallet", h.linkWallet)
}

type createEventRequest struct {
	Name string `json:"name"`
}

type setEventActiveRequest struct {
	Active bool `json:"active"`
}

type createQuestRequest struct {
	Name     string `json:"name"`
	XPReward uint64 `json:"xp_reward"`
}

type initializeRequest struct {
	AssetID    string `json:"asset_id"`
	Owner      string `json:"owner"`
	Event      string `json:"event"`
	InviteCode string `json:"invite_code,omitempty"`
}

type completeRequest struct {
	Event     string `json:"event"`
	Quest     string `json:"quest"`
	Recipient string `json:"recipient"`
}

type evolveRequest struct {
	Stage      soul.Stage        `json:"stage"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type grantRequest struct {
	XP              uint64  `json:"xp"`
	Action          string  `json:"action,omitempty"`
	TradingVolume   *uint64 `json:"trading_volume,omitempty"`
	QuestsCompleted *uint32 `json:"quests_completed,omitempty"`
}

type linkWalletRequest struct {
	Wallet string `json:"wallet"`
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) createEvent(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body createEventRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	ev, err := h.CatalogUC.CreateEvent(c, catalogapp.CreateEventRequest{Caller: caller, Name: body.Name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, ev)
}

func (h Handler) setEventActive(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body setEventActiveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	ev, err := h.CatalogUC.SetEventActive(c, catalogapp.SetEventActiveRequest{
		Caller: caller,
		Name:   ctx.Param("event"),
		Active: body.Active,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, ev)
}

func (h Handler) createQuest(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body createQuestRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	q, err := h.CatalogUC.CreateQuest(c, catalogapp.CreateQuestRequest{
		Caller:   caller,
		Event:    ctx.Param("event"),
		Name:     body.Name,
		XPReward: body.XPReward,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, q)
}

func (h Handler) getQuest(c context.Context, ctx *app.RequestContext) {
	q, err := h.CatalogUC.GetQuest(c, ctx.Param("event"), ctx.Param("quest"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, q)
}

func (h Handler) initialize(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body initializeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PassUC.Initialize(c, pass.InitializeRequest{
		Caller:     caller,
		AssetID:    body.AssetID,
		Owner:      body.Owner,
		Event:      body.Event,
		InviteCode: body.InviteCode,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{AssetID: ctx.Param("asset")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.HistoryUC.Execute(c, history.Request{
		AssetID:      ctx.Param("asset"),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) complete(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body completeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ProgressionUC.CompleteQuest(c, progression.CompleteQuestRequest{
		Caller:    caller,
		Quest:     soul.QuestKey{Event: body.Event, Name: body.Quest},
		AssetID:   ctx.Param("asset"),
		Recipient: body.Recipient,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) evolve(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireAuthenticatedPrincipal(c, ctx); err != nil {
		writeError(ctx, err)
		return
	}
	var body evolveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ProgressionUC.Evolve(c, progression.EvolveRequest{
		AssetID:    ctx.Param("asset"),
		Stage:      body.Stage,
		Attributes: body.Attributes,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) grant(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body grantRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ProgressionUC.GrantXP(c, progression.GrantXPRequest{
		Caller:  caller,
		AssetID: ctx.Param("asset"),
		XP:      body.XP,
		Action:  body.Action,
		Deltas: soul.GrantDeltas{
			TradingVolume:   body.TradingVolume,
			QuestsCompleted: body.QuestsCompleted,
		},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) linkWallet(c context.Context, ctx *app.RequestContext) {
	caller, err := h.requireAuthenticatedPrincipal(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body linkWalletRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PassUC.LinkWallet(c, pass.LinkWalletRequest{
		Caller:  caller,
		AssetID: ctx.Param("asset"),
		Wallet:  body.Wallet,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingPrincipalIDHeader = errors.New("missing x-principal-id header")
var ErrMissingPrincipalKeyHeader = errors.New("missing x-principal-key header")
var ErrMissingPrincipalCredentials = errors.New("missing principal credentials")

func (h Handler) requireAuthenticatedPrincipal(c context.Context, ctx *app.RequestContext) (string, error) {
	principalID := strings.TrimSpace(string(ctx.GetHeader(principalIDHeader)))
	principalKey := strings.TrimSpace(string(ctx.GetHeader(principalKeyHeader)))
	if principalID == "" && principalKey == "" {
		return "", ErrMissingPrincipalCredentials
	}
	if principalID == "" {
		return "", ErrMissingPrincipalIDHeader
	}
	if principalKey == "" {
		return "", ErrMissingPrincipalKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		PrincipalID:  principalID,
		PrincipalKey: principalKey,
	}); err != nil {
		return "", err
	}
	return principalID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPrincipalCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_principal_credentials", err.Error())
	case errors.Is(err, ErrMissingPrincipalIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_principal_id", err.Error())
	case errors.Is(err, ErrMissingPrincipalKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_principal_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_principal_credentials", err.Error())
	case errors.Is(err, authority.ErrUnauthorized):
		writeErrorBody(ctx, consts.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, ownership.ErrOwnershipMismatch):
		writeErrorBody(ctx, consts.StatusForbidden, "ownership_mismatch", err.Error())
	case errors.Is(err, asset.ErrMalformedAssetData):
		writeErrorBody(ctx, consts.StatusForbidden, "malformed_asset_data", err.Error())
	case errors.Is(err, ownership.ErrOracleUnavailable):
		writeErrorBody(ctx, consts.StatusBadGateway, "oracle_unavailable", err.Error())
	case errors.Is(err, progression.ErrDuplicateCompletion):
		writeErrorBody(ctx, consts.StatusConflict, "duplicate_completion", err.Error())
	case errors.Is(err, progression.ErrEventInactive),
		errors.Is(err, pass.ErrEventInactive):
		writeErrorBody(ctx, consts.StatusConflict, "event_inactive", err.Error())
	case errors.Is(err, progression.ErrNotActivated):
		writeErrorBody(ctx, consts.StatusConflict, "not_activated", err.Error())
	case errors.Is(err, soul.ErrInvalidStage):
		writeErrorBody(ctx, consts.StatusConflict, "invalid_stage", err.Error())
	case errors.Is(err, soul.ErrNotEnoughXP):
		writeErrorBody(ctx, consts.StatusConflict, "not_enough_xp", err.Error())
	case errors.Is(err, pass.ErrAlreadyInitialized):
		writeErrorBody(ctx, consts.StatusConflict, "already_initialized", err.Error())
	case errors.Is(err, pass.ErrInvalidInviteCode):
		writeErrorBody(ctx, consts.StatusConflict, "invalid_invite_code", err.Error())
	case errors.Is(err, catalogapp.ErrEventExists):
		writeErrorBody(ctx, consts.StatusConflict, "event_exists", err.Error())
	case errors.Is(err, catalogapp.ErrQuestExists):
		writeErrorBody(ctx, consts.StatusConflict, "quest_exists", err.Error())
	case errors.Is(err, progression.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, catalogapp.ErrInvalidRequest),
		errors.Is(err, catalog.ErrInvalidName),
		errors.Is(err, pass.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
