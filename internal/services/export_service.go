package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripspark/internal/models/db_models"
	"tripspark/pkg/utils"
)

// TripExporter renders a persisted trip into a document and returns where to download it.
type TripExporter interface {
	Export(ctx context.Context, trip *db_models.Trip) (string, error)
}

// APITemplateExporter renders trips through apitemplate.io.
type APITemplateExporter struct {
	HTTP       *http.Client
	BaseURL    string
	APIKey     string
	TemplateID string
}

func NewAPITemplateExporter(baseURL, apiKey, templateID string, timeout time.Duration) *APITemplateExporter {
	return &APITemplateExporter{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		TemplateID: templateID,
	}
}

var templateSanitizer = strings.NewReplacer(
	"#", "",
	"{", "",
	"}", "",
	"<", "",
	">", "",
	"&", "",
	"*", "",
	"\"", "",
	"'", "",
	"\n", " ",
	"\r", "",
)

// sanitizeTemplateString strips characters the document template engine treats as markup.
func sanitizeTemplateString(s string) string {
	return templateSanitizer.Replace(s)
}

func templatePaths(segments []db_models.PathSegment) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(segments))
	for _, seg := range segments {
		out = append(out, map[string]interface{}{
			"day":         seg.Day,
			"path_index":  seg.PathIndex,
			"from":        sanitizeTemplateString(seg.FromCode),
			"to":          sanitizeTemplateString(seg.ToCode),
			"distance":    sanitizeTemplateString(fmt.Sprintf("%v", seg.Distance)),
			"description": sanitizeTemplateString(seg.ActivityDescription),
			"start_time":  sanitizeTemplateString(seg.StartTime),
			"end_time":    sanitizeTemplateString(seg.EndTime),
		})
	}
	return out
}

func (e *APITemplateExporter) Export(ctx context.Context, trip *db_models.Trip) (string, error) {
	accommodation := ""
	if trip.AccommodationID != nil {
		accommodation = fmt.Sprintf("%d", *trip.AccommodationID)
	}
	payload := map[string]interface{}{
		"merge_fields": map[string]interface{}{
			"trip_name":     sanitizeTemplateString(trip.Name),
			"trip_type":     sanitizeTemplateString(trip.Types),
			"condition":     fmt.Sprintf("%d", trip.ConditionID),
			"accommodation": accommodation,
			"paths":         templatePaths(trip.PathSegments),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal payload: %v", utils.ErrExportFailure, err)
	}

	endpoint := e.BaseURL + "/v1/create?" + url.Values{"template_id": {e.TemplateID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", utils.ErrExportFailure, err)
	}
	req.Header.Set("X-API-KEY", e.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrExportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", utils.ErrExportFailure, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result struct {
		DownloadURL string `json:"download_url"`
		URL         string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode: %v", utils.ErrExportFailure, err)
	}
	link := result.DownloadURL
	if link == "" {
		link = result.URL
	}
	if link == "" {
		return "", fmt.Errorf("%w: response has no download url", utils.ErrExportFailure)
	}
	return link, nil
}
