package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Spok95/supply-console/internal/domain"
	"github.com/Spok95/supply-console/internal/infra/apiclient"
	"github.com/Spok95/supply-console/internal/interchange"
	"github.com/Spok95/supply-console/internal/prefs"
	"github.com/Spok95/supply-console/internal/views"
)

const maxUpload = 10 << 20

// Console: HTTP-доступ к экранам консоли, экспорту/импорту и настройкам.
type Console struct {
	views *views.Console
	prefs *prefs.Service
	log   *slog.Logger
}

func NewConsole(v *views.Console, p *prefs.Service, log *slog.Logger) *Console {
	return &Console{views: v, prefs: p, log: log}
}

func (c *Console) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /views", c.listViews)
	mux.HandleFunc("GET /views/{resource}", c.render)
	mux.HandleFunc("POST /views/{resource}", c.submit)
	mux.HandleFunc("DELETE /views/{resource}/{id}", c.remove)

	mux.HandleFunc("GET /export/{file}", c.export)
	mux.HandleFunc("POST /import/products", c.importProducts)

	mux.HandleFunc("GET /forecast/{product}", c.forecast)
	mux.HandleFunc("POST /optimization/{product}/purchase-order", c.generatePO)

	mux.HandleFunc("GET /prefs/profile", c.getProfile)
	mux.HandleFunc("PUT /prefs/profile", c.putProfile)
	mux.HandleFunc("GET /prefs/settings", c.getSettings)
	mux.HandleFunc("PUT /prefs/settings", c.putSettings)
}

func (c *Console) listViews(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, strings.Join(c.views.Resources(), "\n"))
}

// render: ошибка загрузки уже видна в тексте экрана, поэтому ответ всё равно 200.
func (c *Console) render(w http.ResponseWriter, r *http.Request) {
	v, ok := c.views.View(r.PathValue("resource"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := v.Mount(r.Context()); err != nil {
		c.log.Warn("view load failed", "resource", v.Resource(), "err", err)
	}
	writeText(w, http.StatusOK, v.Render())
}

func (c *Console) editable(w http.ResponseWriter, r *http.Request) (views.Editable, bool) {
	v, ok := c.views.View(r.PathValue("resource"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	e, ok := v.(views.Editable)
	if !ok {
		http.Error(w, "resource is read-only", http.StatusMethodNotAllowed)
		return nil, false
	}
	return e, true
}

func (c *Console) submit(w http.ResponseWriter, r *http.Request) {
	e, ok := c.editable(w, r)
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUpload))
	if err != nil {
		c.fail(w, err)
		return
	}
	if err := e.SubmitJSON(r.Context(), raw); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// remove: ресурсы с подтверждением требуют ?confirm=yes, иначе 409.
func (c *Console) remove(w http.ResponseWriter, r *http.Request) {
	e, ok := c.editable(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "yes"
	if err := e.Remove(r.Context(), r.PathValue("id"), confirmed); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Console) export(w http.ResponseWriter, r *http.Request) {
	name, format, ok := strings.Cut(r.PathValue("file"), ".")
	if !ok || name != "products" {
		http.NotFound(w, r)
		return
	}
	p := c.views.Products
	if err := p.Mount(r.Context()); err != nil {
		c.fail(w, err)
		return
	}

	var buf bytes.Buffer
	q := r.URL.Query()
	filename, err := p.Export(&buf, format, q.Get("search"), q.Get("category"))
	if err != nil {
		c.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = buf.WriteTo(w)
}

func (c *Console) importProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		c.fail(w, &domain.ValidationError{Field: "file", Msg: err.Error()})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		c.fail(w, &domain.ValidationError{Field: "file", Msg: "is required"})
		return
	}
	defer func() { _ = f.Close() }()

	if err := c.views.Products.Mount(r.Context()); err != nil {
		c.log.Warn("products load failed before import", "err", err)
	}
	n, err := c.views.Products.Import(r.Context(), hdr.Filename, f)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (c *Console) forecast(w http.ResponseWriter, r *http.Request) {
	periods := 6
	if s := r.URL.Query().Get("periods"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.fail(w, &domain.ValidationError{Field: "periods", Msg: "must be a number"})
			return
		}
		periods = n
	}
	points, err := c.views.Dashboard.Forecast(r.Context(), r.PathValue("product"), periods)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (c *Console) generatePO(w http.ResponseWriter, r *http.Request) {
	if err := c.views.Optimization.Mount(r.Context()); err != nil {
		c.fail(w, err)
		return
	}
	po, err := c.views.Optimization.GeneratePO(r.Context(), r.PathValue("product"))
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, po)
}

func (c *Console) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := c.prefs.Profile(r.Context())
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (c *Console) putProfile(w http.ResponseWriter, r *http.Request) {
	var p prefs.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.fail(w, &domain.ValidationError{Field: "body", Msg: err.Error()})
		return
	}
	if err := c.prefs.SaveProfile(r.Context(), p); err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (c *Console) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := c.prefs.Settings(r.Context())
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (c *Console) putSettings(w http.ResponseWriter, r *http.Request) {
	s := prefs.DefaultSettings()
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		c.fail(w, &domain.ValidationError{Field: "body", Msg: err.Error()})
		return
	}
	if err := c.prefs.SaveSettings(r.Context(), s); err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (c *Console) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		c.log.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, views.ErrConfirmRequired),
		errors.Is(err, views.ErrNothingPending),
		errors.Is(err, views.ErrDialogClosed):
		return http.StatusConflict
	case errors.Is(err, views.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, interchange.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, apiclient.ErrFetch), errors.Is(err, apiclient.ErrMutation):
		return http.StatusBadGateway
	}
	var pe *apiclient.ParseError
	if errors.As(err, &pe) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func contentType(format string) string {
	switch format {
	case interchange.FormatCSV:
		return "text/csv; charset=utf-8"
	case interchange.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case interchange.FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func writeText(w http.ResponseWriter, code int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, s+"\n")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
