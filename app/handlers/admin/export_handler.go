package admin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/khayal-shop/app/helpers"
	"github.com/Rakhulsr/khayal-shop/app/services"
)

func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	h.writeWorkbook(w, r, "orders.xlsx", h.exports.WriteOrders)
}

func (h *AdminHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	h.writeWorkbook(w, r, "products.xlsx", h.exports.WriteProducts)
}

// writeWorkbook buffers the workbook so a failure can still produce a JSON
// error instead of a truncated download.
func (h *AdminHandler) writeWorkbook(w http.ResponseWriter, r *http.Request, filename string, write func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := write(r.Context(), &buf); err != nil {
		log.Printf("AdminHandler.writeWorkbook: failed to build %s: %v", filename, err)
		helpers.RenderError(h.render, w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Type", services.XLSXContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("AdminHandler.writeWorkbook: failed to send %s: %v", filename, err)
	}
}
