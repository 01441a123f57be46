package payments

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/allocations"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/importer"
)

const maxUploadSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=payments
type Importer interface {
	Import(ctx context.Context, format importer.Format, r io.Reader) (*importer.Result, error)
}

type Handler struct {
	importer Importer
}

func NewHandler(imp Importer) *Handler {
	return &Handler{importer: imp}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(identity.RequireWriter).Post("/import", h.importFeed)
}

type failureResponse struct {
	Reference string `json:"reference"`
	Error     string `json:"error"`
}

type importResponse struct {
	Parsed     int                       `json:"parsed"`
	Recorded   int                       `json:"recorded"`
	Duplicates []string                  `json:"duplicates"`
	Failures   []failureResponse         `json:"failures"`
	Allocation allocations.BatchResponse `json:"allocation"`
}

func (h *Handler) importFeed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	res, err := h.importer.Import(r.Context(), format, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := importResponse{
		Parsed:     res.Parsed,
		Recorded:   len(res.Recorded),
		Duplicates: res.Duplicates,
		Failures:   make([]failureResponse, 0, len(res.Failures)),
		Allocation: allocations.ToBatchResponse(res.Allocation),
	}

	if resp.Duplicates == nil {
		resp.Duplicates = []string{}
	}

	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, failureResponse{Reference: f.Reference, Error: f.Err.Error()})
	}

	respond.JSON(w, http.StatusCreated, resp)
}
