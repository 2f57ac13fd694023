// Package web serves the browser surface: an ingredient form and the
// rendered suggestion report.
package web

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"pantrychef/internal/app"
	"pantrychef/internal/planner"
)

//go:embed templates/index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

// maxUploadBytes caps multipart bodies; pantry photos never need more.
const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Handler serves the form and suggestion pages.
type Handler struct {
	app *app.App
}

// NewRouter builds the gin engine with the demo middleware stack.
func NewRouter(application *app.App) *gin.Engine {
	router := gin.New()
	router.Use(recovery(), requestid.New(), requestLogger(), cors.Default())
	router.SetHTMLTemplate(pageTemplate)

	h := &Handler{app: application}
	router.GET("/", h.Index)
	router.POST("/suggest", h.Suggest)
	router.GET("/healthz", h.Health)

	return router
}

type resultRow struct {
	Name    string
	Status  string
	Matched string
	Missing string
}

type planRow struct {
	Day    string
	Recipe string
}

// page is the template data for every render of index.html.
type page struct {
	Ingredients   string
	PlanRequested bool
	Error         string
	Warnings      []string
	Available     string
	Rows          []resultRow
	ShoppingList  []string
	Plan          []planRow
}

// Index renders the empty ingredient form.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", page{})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Suggest handles the form post: ingredients text and/or a pantry photo.
func (h *Handler) Suggest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	ingredients := c.PostForm("ingredients")
	planRequested := c.PostForm("plan") == "1"
	form := page{Ingredients: ingredients, PlanRequested: planRequested}

	req := app.SuggestRequest{Text: ingredients}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExtensions[ext] {
			form.Error = "Invalid file type. Only JPEG, PNG and WEBP images are allowed."
			c.HTML(http.StatusBadRequest, "index", form)
			return
		}
		src, err := file.Open()
		if err != nil {
			form.Error = "Could not read the uploaded image."
			c.HTML(http.StatusBadRequest, "index", form)
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			form.Error = "Could not read the uploaded image."
			c.HTML(http.StatusBadRequest, "index", form)
			return
		}
		req.Image = data
		req.ImageName = file.Filename
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		// Text-only request.
	default:
		form.Error = "Could not read the uploaded image (10 MB limit)."
		c.HTML(http.StatusBadRequest, "index", form)
		return
	}

	resp, err := h.app.Suggest(c.Request.Context(), req)
	if errors.Is(err, app.ErrNoIngredients) {
		form.Error = "Please enter at least one ingredient."
		c.HTML(http.StatusBadRequest, "index", form)
		return
	}
	if err != nil {
		c.Error(err)
		form.Error = "Something went wrong, please try again."
		c.HTML(http.StatusInternalServerError, "index", form)
		return
	}

	form.Warnings = resp.Warnings
	form.Available = strings.Join(resp.Available, ", ")
	form.Rows = buildRows(resp)
	if list, err := h.app.ShoppingList(resp, nil); err == nil {
		form.ShoppingList = list
	}
	if planRequested {
		if week, err := h.app.PlanWeek(resp, nil); err == nil && week.Assigned() > 0 {
			form.Plan = buildPlanRows(week)
		}
	}

	c.HTML(http.StatusOK, "index", form)
}

func buildRows(resp *app.SuggestResponse) []resultRow {
	rows := make([]resultRow, 0, len(resp.Results))
	for _, r := range resp.Results {
		row := resultRow{
			Name:    r.Recipe.Name,
			Status:  "Ready",
			Matched: fmt.Sprintf("%d/%d", r.Matched, r.Required),
			Missing: "-",
		}
		if !r.Makeable() {
			row.Status = fmt.Sprintf("Missing %d", len(r.Missing))
			row.Missing = strings.Join(r.Missing, ", ")
		}
		rows = append(rows, row)
	}
	return rows
}

func buildPlanRows(week planner.Week) []planRow {
	rows := make([]planRow, 0, len(week.Plan))
	for _, dp := range week.Plan {
		row := planRow{Day: dp.Day, Recipe: "-"}
		if dp.Recipe != nil {
			row.Recipe = dp.Recipe.Name
		}
		rows = append(rows, row)
	}
	return rows
}
