package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortly/internal/models"
	"github.com/vadimbarashkov/shortly/internal/storage"
	"github.com/vadimbarashkov/shortly/pkg/response"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "pong")
}

type shortenRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

type urlResponse struct {
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	CreatedAt   time.Time `json:"created_at"`
	AccessCount int64     `json:"access_count"`
}

type analyticsResponse struct {
	TotalURLs   int64         `json:"total_urls"`
	TotalClicks int64         `json:"total_clicks"`
	URLs        []urlResponse `json:"urls"`
}

func toURLResponse(url *models.URL, baseURL string) urlResponse {
	return urlResponse{
		OriginalURL: url.OriginalURL,
		ShortCode:   url.ShortCode,
		ShortURL:    fmt.Sprintf("%s/%s", baseURL, url.ShortCode),
		CreatedAt:   url.CreatedAt,
		AccessCount: url.AccessCount,
	}
}

func toURLResponses(urls []*models.URL, baseURL string) []urlResponse {
	responses := make([]urlResponse, 0, len(urls))
	for _, url := range urls {
		responses = append(responses, toURLResponse(url, baseURL))
	}
	return responses
}

func handleIndex(indexHTML []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(indexHTML)
	}
}

func handleShortenURL(svc URLService, validate *validator.Validate, baseURL string) http.HandlerFunc {
	const op = "api.http.handleShortenURL"

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		url, err := svc.ShortenURL(r.Context(), req.URL)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, toURLResponse(url, baseURL))
	}
}

func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.ResolveShortCode(r.Context(), shortCode)
		if err != nil {
			if errors.Is(err, storage.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ResourceNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.Redirect(w, r, url.OriginalURL, http.StatusMovedPermanently)
	}
}

func handleListURLs(svc URLService, baseURL string) http.HandlerFunc {
	const op = "api.http.handleListURLs"

	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := svc.ListURLs(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		responses := toURLResponses(urls, baseURL)
		sort.Slice(responses, func(i, j int) bool {
			return responses[i].CreatedAt.After(responses[j].CreatedAt)
		})

		render.Status(r, http.StatusOK)
		render.JSON(w, r, responses)
	}
}

func handleAnalytics(svc URLService, baseURL string) http.HandlerFunc {
	const op = "api.http.handleAnalytics"

	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.GetStats(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		urls, err := svc.ListURLs(r.Context())
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		responses := toURLResponses(urls, baseURL)
		sort.Slice(responses, func(i, j int) bool {
			return responses[i].AccessCount > responses[j].AccessCount
		})

		render.Status(r, http.StatusOK)
		render.JSON(w, r, analyticsResponse{
			TotalURLs:   stats.TotalURLs,
			TotalClicks: stats.TotalClicks,
			URLs:        responses,
		})
	}
}
