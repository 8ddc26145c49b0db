package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/flashurl/internal/entity"
	"github.com/vadimbarashkov/flashurl/internal/qr"
	"github.com/vadimbarashkov/flashurl/web"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := web.IndexHTML()
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

type urlUseCase interface {
	ShortenURL(ctx context.Context, longURL string) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
}

type qrRenderer interface {
	Render(content string) (string, error)
}

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, baseURL string) *urlHandler {
	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

func (h *urlHandler) shortURL(shortCode string) string {
	return h.baseURL + "/" + shortCode
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	url, err := h.useCase.ShortenURL(r.Context(), req.LongURL)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidURL) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, invalidURLResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, shortenResponse{ShortURL: h.shortURL(url.ShortCode)})
}

func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, shortCodeNotFoundResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	http.Redirect(w, r, url.LongURL, http.StatusMovedPermanently)
}

type qrHandler struct {
	renderer qrRenderer
	validate *validator.Validate
}

func newQRHandler(renderer qrRenderer, validate *validator.Validate) *qrHandler {
	return &qrHandler{
		renderer: renderer,
		validate: validate,
	}
}

func (h *qrHandler) generateQR(w http.ResponseWriter, r *http.Request) {
	req := qrRequest{URL: r.URL.Query().Get("url")}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	dataURI, err := h.renderer.Render(req.URL)
	if err != nil {
		if errors.Is(err, qr.ErrInvalidContent) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, qrGenerateErrorResponse)
			return
		}

		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, qrEncodeErrorResponse)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataURI)
}
