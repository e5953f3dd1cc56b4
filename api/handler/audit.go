package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/audit"
	"github.com/taskdeck/backend/pkg/httpcontext"
)

type AuditHandler struct {
	baseHandler
	log *audit.Log
}

func NewAuditHandler(log *audit.Log, adapter *httpcontext.Adapter, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		baseHandler: newBaseHandler(adapter, logger),
		log:         log,
	}
}

// @Summary Recent audit trail entries, newest first
// @Tags audit
// @Router /api/v1/audit [get]
func (h *AuditHandler) Recent(ctx *fasthttp.RequestCtx) {
	caller := h.caller(ctx)
	if caller == nil {
		h.respondError(ctx, domain.ErrUnauthenticated)
		return
	}
	// The trail contains actions of every user, so only admins read it.
	if caller.Role != domain.RoleAdmin {
		h.respondError(ctx, domain.ForbiddenAction("readAuditTrail"))
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 50)
	entries, err := h.log.Recent(limit)
	if err != nil {
		h.respondError(ctx, domain.Internal(err))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
