package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	"github.com/taskdeck/backend/repository"
	reportUC "github.com/taskdeck/backend/usecase/report"
)

type ReportHandler struct {
	baseHandler
	uc *reportUC.UseCase
}

func NewReportHandler(uc *reportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Assignee with the most (or fewest) matching tasks
// @Tags reports
// @Router /api/v1/reports/busiest-assignee [get]
func (h *ReportHandler) BusiestAssignee(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	query := repository.AssigneeQuery{
		Status: domain.Status(args.Peek("status")),
		Role:   domain.Role(args.Peek("role")),
		Year:   parseInt(string(args.Peek("year")), 0),
		Month:  parseInt(string(args.Peek("month")), 0),
		Day:    parseInt(string(args.Peek("day")), 0),
		Least:  args.GetBool("least"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activity, err := h.uc.TopAssignee(stdCtx, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activity)
}

// @Summary Day or month with the most tasks created
// @Tags reports
// @Router /api/v1/reports/peak-created [get]
func (h *ReportHandler) PeakCreated(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	bucket, err := h.uc.PeakCreated(stdCtx, h.unit(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bucket)
}

// @Summary Day or month with the most tasks completed
// @Tags reports
// @Router /api/v1/reports/peak-completed [get]
func (h *ReportHandler) PeakCompleted(ctx *fasthttp.RequestCtx) {
	role := domain.Role(ctx.QueryArgs().Peek("role"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	bucket, err := h.uc.PeakCompleted(stdCtx, h.unit(ctx), role)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bucket)
}

func (h *ReportHandler) unit(ctx *fasthttp.RequestCtx) repository.PeakUnit {
	if unit := string(ctx.QueryArgs().Peek("unit")); unit != "" {
		return repository.PeakUnit(unit)
	}
	return repository.PeakByDay
}
