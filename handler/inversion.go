// Package handler 提供逆序对计数的 HTTP 接口。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wyfcoding/inversion/response"
	"github.com/wyfcoding/inversion/service"
	"github.com/wyfcoding/inversion/xerrors"

	"github.com/gin-gonic/gin"
)

// CountRequest 是单条计数请求体，元素按 JSON 原样解码后再转换为整数。
type CountRequest struct {
	Sequence []any `json:"sequence" binding:"required"`
}

// CountResponse 是单条计数结果。
type CountResponse struct {
	Length     int    `json:"length"`
	Inversions uint64 `json:"inversions"`
	Strategy   string `json:"strategy"`
}

// BatchRequest 是批量计数请求体。
type BatchRequest struct {
	Sequences [][]any `json:"sequences" binding:"required"`
}

// BatchItem 是批量结果中的一项，失败时 Inversions 为空并带上错误码。
type BatchItem struct {
	Index      int     `json:"index"`
	Inversions *uint64 `json:"inversions,omitempty"`
	Code       int     `json:"code,omitempty"`
	Error      string  `json:"error,omitempty"`
	Detail     string  `json:"detail,omitempty"`
}

// BatchResponse 是批量计数结果，Results 与请求中的序列一一对应。
type BatchResponse struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Results   []BatchItem `json:"results"`
}

// InversionHandler 把 HTTP 请求转交给 InversionService。
type InversionHandler struct {
	svc    *service.InversionService
	logger *slog.Logger
}

// NewInversionHandler 创建处理器。
func NewInversionHandler(svc *service.InversionService, logger *slog.Logger) *InversionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InversionHandler{svc: svc, logger: logger}
}

// Register 在 r 上注册 /v1/inversions 路由组。
func (h *InversionHandler) Register(r gin.IRouter) {
	g := r.Group("/v1/inversions")
	g.POST("", h.Count)
	g.POST("/batch", h.CountBatch)
}

// Count 处理 POST /v1/inversions。
func (h *InversionHandler) Count(c *gin.Context) {
	var req CountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	n, err := h.svc.CountValues(ctx, req.Sequence)
	if err != nil {
		h.logger.InfoContext(ctx, "count request rejected", "length", len(req.Sequence), "error", err)
		response.Error(c, err)
		return
	}

	response.Success(c, CountResponse{
		Length:     len(req.Sequence),
		Inversions: n,
		Strategy:   string(h.svc.Options().Strategy),
	})
}

// CountBatch 处理 POST /v1/inversions/batch。
func (h *InversionHandler) CountBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	results, err := h.svc.CountValuesBatch(ctx, req.Sequences)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = xerrors.New(xerrors.ErrDeadlineExceeded, http.StatusGatewayTimeout, "batch interrupted", "", err)
		}
		h.logger.WarnContext(ctx, "batch request failed", "size", len(req.Sequences), "error", err)
		response.Error(c, err)
		return
	}

	resp := BatchResponse{Total: len(results), Results: make([]BatchItem, len(results))}
	for i, r := range results {
		resp.Results[i] = toBatchItem(r)
		if r.Err == nil {
			resp.Succeeded++
		}
	}
	response.Success(c, resp)
}

func toBatchItem(r service.BatchResult) BatchItem {
	item := BatchItem{Index: r.Index}
	if r.Err == nil {
		n := r.Inversions
		item.Inversions = &n
		return item
	}
	xe, ok := xerrors.FromError(r.Err)
	if !ok {
		xe = xerrors.Internal("count failed", r.Err).WithDetail("%v", r.Err)
	}
	item.Code = xe.Code
	item.Error = xe.Message
	item.Detail = xe.Detail
	return item
}

func bindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.ErrorWithStatus(c, http.StatusRequestEntityTooLarge, "request body too large", err.Error())
		return
	}
	response.Error(c, xerrors.InvalidArg("invalid request body").WithDetail("%v", err))
}
