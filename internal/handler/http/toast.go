package http

import (
	"net/http"

	"github.com/utafrali/storefront/internal/toast"
	"github.com/utafrali/storefront/pkg/httputil"
)

// ToastHandler exposes the current notification.
type ToastHandler struct {
	toast *toast.Toast
}

// NewToastHandler creates a new toast HTTP handler.
func NewToastHandler(t *toast.Toast) *ToastHandler {
	return &ToastHandler{toast: t}
}

// GetToast handles GET /api/v1/toast
func (h *ToastHandler) GetToast(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.toast.Current())
}

// DismissToast handles DELETE /api/v1/toast
func (h *ToastHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.toast.Dismiss()
	httputil.WriteData(w, http.StatusOK, h.toast.Current())
}
