package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crm-manager/internal/export"
)

type ExportHandler struct {
	exporter *export.Exporter
}

func NewExportHandler(exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Download streams the CSV as an attachment. With ?archive=true a copy is
// also kept in object storage and its URL sent in X-Archive-URL.
func (h *ExportHandler) Download(c *gin.Context) {
	f, err := h.exporter.Export(c.Request.Context(), c.Param("entity"), c.Query("archive") == "true")
	if err != nil {
		respondError(c, err, "failed_to_export", "Erro ao exportar dados.")
		return
	}

	if f.ArchiveURL != "" {
		c.Header("X-Archive-URL", f.ArchiveURL)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(f.Content))
}
