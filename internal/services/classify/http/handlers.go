// Package http exposes the classify service over HTTP
package http

import (
	stdhttp "net/http"

	"snipjar/internal/modkit/httpkit"
	"snipjar/internal/platform/net/http/bind"
	"snipjar/internal/services/classify/domain"
)

// batchBodyLimit leaves room for a full batch of maximum size items
const batchBodyLimit = 16 << 20

// Register mounts the classify endpoints
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/classify", h.classify)
	httpkit.PostJSON(r, "/classify/batch", h.batch, bind.JSONOptions{MaxBytes: batchBodyLimit, DisallowUnknown: true})
	httpkit.CreateJSON(r, "/corrections", h.correct)
	httpkit.Get(r, "/corrections", h.corrections)
	httpkit.Get(r, "/categories", h.categories)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /classify Classify classify
// @Summary Classify one piece of clipboard content
// @Tags Classify
// @Accept json
// @Produce json
// @Param payload body domain.ClassifyInput true "Content"
// @Success 200 {object} domain.ClassifyOutput "ok"
// @Router /classify [post]
func (h *handlers) classify(r *stdhttp.Request, in domain.ClassifyInput) (any, error) {
	return h.svc.Classify(r.Context(), in), nil
}

// swagger:route POST /classify/batch Classify classifyBatch
// @Summary Reclassify stored memos, results in input order
// @Tags Classify
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Items"
// @Success 200 {object} domain.BatchOutput "ok"
// @Failure 422 {object} httpkit.Envelope "batch over the limit"
// @Router /classify/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	items, err := h.svc.Reclassify(r.Context(), in.Items)
	if err != nil {
		return nil, err
	}
	return domain.BatchOutput{Items: items}, nil
}

// swagger:route POST /corrections Corrections recordCorrection
// @Summary Record a user relabel for offline review
// @Tags Corrections
// @Accept json
// @Produce json
// @Param payload body domain.CorrectionInput true "Correction"
// @Success 201 {object} domain.CorrectionAccepted "accepted"
// @Failure 422 {object} httpkit.Envelope "unknown category"
// @Router /corrections [post]
func (h *handlers) correct(r *stdhttp.Request, in domain.CorrectionInput) (any, error) {
	return h.svc.RecordCorrection(r.Context(), in)
}

// swagger:route GET /corrections Corrections listCorrections
// @Summary Newest recorded corrections
// @Tags Corrections
// @Produce json
// @Param limit query int false "max rows (1..500)" default(50)
// @Success 200 {array} domain.Correction "ok"
// @Router /corrections [get]
func (h *handlers) corrections(r *stdhttp.Request) (any, error) {
	limit, err := bind.QueryInt(r, "limit", 50, 1, 500)
	if err != nil {
		return nil, err
	}
	return h.svc.ListCorrections(r.Context(), limit)
}

// swagger:route GET /categories Classify categories
// @Summary Every category with its icon and color
// @Tags Classify
// @Produce json
// @Success 200 {array} domain.CategoryInfo "ok"
// @Router /categories [get]
func (h *handlers) categories(_ *stdhttp.Request) (any, error) {
	return h.svc.Categories(), nil
}
