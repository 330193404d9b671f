package product

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Handler exposes the public catalog listing and the admin CRUD endpoints.
type Handler struct {
	svc    *ProductService
	logger *zap.SugaredLogger
}

func NewHandler(svc *ProductService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *entity.Product `json:"product"`
}

type listResponse struct {
	Success  bool             `json:"success"`
	Products []entity.Product `json:"products"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("get products error", "err", err)
		utilities.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, listResponse{Success: true, Products: ps})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parse(w, r, "create")
	if !ok {
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.logger.Errorw("create product error", "err", err)
		utilities.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.logger.Infow("admin created product", "admin_id", adminID(r), "product_id", p.ID, "name", p.Name)
	utilities.WriteJSON(w, http.StatusCreated, productResponse{
		Success: true, Message: "Product created successfully", Product: p,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parse(w, r, "update")
	if !ok {
		return
	}
	id := r.PathValue("id")
	p, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			h.logger.Infow("update product: not found", "product_id", id)
			utilities.Fail(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Errorw("update product error", "product_id", id, "err", err)
		utilities.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.logger.Infow("admin updated product", "admin_id", adminID(r), "product_id", p.ID, "name", p.Name)
	utilities.WriteJSON(w, http.StatusOK, productResponse{
		Success: true, Message: "Product updated successfully", Product: p,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			h.logger.Infow("delete product: not found", "product_id", id)
			utilities.Fail(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Errorw("delete product error", "product_id", id, "err", err)
		utilities.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.logger.Infow("admin deleted product", "admin_id", adminID(r), "product_id", id)
	utilities.WriteJSON(w, http.StatusOK, utilities.Envelope{Success: true, Message: "Product deleted successfully"})
}

// parse decodes and validates the body, answering 400 itself on failure.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request, op string) (Input, bool) {
	raw, err := utilities.DecodeJSON(r)
	if err != nil {
		h.logger.Debugw("invalid product payload", "op", op, "err", err)
		utilities.Fail(w, http.StatusBadRequest, "Invalid request body")
		return Input{}, false
	}
	in, issues := Parse(raw)
	if len(issues) > 0 {
		h.logger.Infow("product validation error", "op", op, "message", issues.Join(", "))
		utilities.FailFields(w, "Validation failed", validation.Project(issues, validation.FirstSegment))
		return Input{}, false
	}
	return in, true
}

func adminID(r *http.Request) string {
	id, _ := session.FromContext(r.Context())
	return id.UserID
}
