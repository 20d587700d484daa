package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jhonny97or/Skus-Diarios/internal/converter"
	"github.com/Jhonny97or/Skus-Diarios/internal/exporter"
	"github.com/Jhonny97or/Skus-Diarios/internal/model"
	"github.com/Jhonny97or/Skus-Diarios/internal/resolver"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Weight form fields keep the day names of the original upload form.
var weightFields = [7]string{
	model.Monday:    "lunes",
	model.Tuesday:   "martes",
	model.Wednesday: "miercoles",
	model.Thursday:  "jueves",
	model.Friday:    "viernes",
	model.Saturday:  "sabado",
	model.Sunday:    "domingo",
}

// Convert converts an uploaded weekly sales workbook and responds with the
// daily workbook as an attachment.
// POST /api/convert
func (h *Handler) Convert(c *gin.Context) {
	upload, err := formFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := h.conversionOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := upload.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer src.Close()

	report, err := h.converter.Convert(src, opts)
	if err != nil {
		h.respondConversionError(c, err)
		return
	}

	wb, err := exporter.NewExporter().Build(report.Records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exporter.Filename))
	c.Header("X-Records", strconv.Itoa(len(report.Records)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

type convertProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ConvertStream converts an upload with SSE progress events and finishes with
// a one-shot download URL.
// POST /api/convert/stream
func (h *Handler) ConvertStream(c *gin.Context) {
	upload, err := formFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := h.conversionOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	send := func(event convertProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(convertProgressEvent{
		Type:      "start",
		Message:   "converting " + upload.Filename,
		Data:      map[string]any{"filename": upload.Filename},
		Timestamp: time.Now(),
	})

	src, err := upload.Open()
	if err != nil {
		send(convertProgressEvent{Type: "error", Message: "failed to read uploaded file", Data: map[string]any{}, Timestamp: time.Now()})
		return
	}
	defer src.Close()

	report, err := h.converter.Convert(src, opts)
	if err != nil {
		send(convertProgressEvent{Type: "error", Message: err.Error(), Data: map[string]any{}, Timestamp: time.Now()})
		return
	}

	send(convertProgressEvent{
		Type:    "progress",
		Message: "building workbook",
		Data: map[string]any{
			"records":      len(report.Records),
			"distributed":  report.Distributed,
			"skippedCells": report.SkippedCells,
		},
		Timestamp: time.Now(),
	})

	wb, err := exporter.NewExporter().Build(report.Records)
	if err != nil {
		send(convertProgressEvent{Type: "error", Message: "export failed: " + err.Error(), Data: map[string]any{}, Timestamp: time.Now()})
		return
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("skus_convert_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := wb.SaveAs(tempPath); err != nil {
		send(convertProgressEvent{Type: "error", Message: "write export file: " + err.Error(), Data: map[string]any{}, Timestamp: time.Now()})
		_ = os.Remove(tempPath)
		return
	}

	token := h.downloads.put(tempPath, len(report.Records), 10*time.Minute)

	send(convertProgressEvent{
		Type:    "done",
		Message: "conversion finished",
		Data: map[string]any{
			"records":     len(report.Records),
			"downloadUrl": "/api/convert/download/" + token,
		},
		Timestamp: time.Now(),
	})
}

// DownloadConversion serves a converted workbook once.
// GET /api/convert/download/:token
func (h *Handler) DownloadConversion(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "converted file no longer exists"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exporter.Filename))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.New("invalid multipart form")
	}
	files := form.File["file"]
	if len(files) == 0 {
		return nil, errors.New("no uploaded file found")
	}
	return files[0], nil
}

// conversionOptions builds converter options from the config defaults plus
// any per-request form overrides.
func (h *Handler) conversionOptions(c *gin.Context) (converter.Options, error) {
	profile := h.cfg.Weights.Profile()
	for d, field := range weightFields {
		w, err := formFloat(c, field, profile[d])
		if err != nil {
			return converter.Options{}, err
		}
		profile[d] = w
	}
	if err := profile.Validate(); err != nil {
		return converter.Options{}, err
	}

	unitPrice, err := formFloat(c, "unit_price", h.cfg.Pricing.UnitPrice)
	if err != nil {
		return converter.Options{}, err
	}
	if unitPrice <= 0 {
		return converter.Options{}, fmt.Errorf("unit_price must be positive, got %v", unitPrice)
	}

	strategy := resolver.Strategy(c.DefaultPostForm("strategy", h.cfg.Weeks.Strategy))
	if !strategy.Valid() {
		return converter.Options{}, fmt.Errorf("unknown week strategy %q", strategy)
	}

	year := h.cfg.Weeks.Year
	if v := c.PostForm("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return converter.Options{}, fmt.Errorf("invalid year: %q", v)
		}
	}

	origin, err := h.cfg.Weeks.OriginDate()
	if err != nil {
		return converter.Options{}, err
	}
	if v := c.PostForm("origin"); v != "" {
		origin, err = time.Parse("2006-01-02", v)
		if err != nil {
			return converter.Options{}, fmt.Errorf("invalid origin: %q", v)
		}
	}

	return converter.Options{
		Profile:   profile,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Weeks: resolver.Options{
			Strategy: strategy,
			Year:     year,
			Origin:   origin,
		},
	}, nil
}

func formFloat(c *gin.Context, name string, def float64) (float64, error) {
	v := c.PostForm(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return f, nil
}

// respondConversionError maps the converter's error taxonomy to HTTP
// responses: structural validation failures get 422 with their user-readable
// messages, anything else is a 500.
func (h *Handler) respondConversionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, converter.ErrNoWeekColumns), errors.Is(err, converter.ErrNoSalesData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error("conversion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "conversion failed: " + err.Error()})
	}
}
