package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/pkg/models"
)

// ollamaBaseNames maps Ollama model base names (tag stripped) to the models
// this service exposes
var ollamaBaseNames = map[string]models.AIModel{
	"mistral":  models.ModelMistral7B,
	"llama3.1": models.ModelLlama31_8B,
	"phi3":     models.ModelPhi3Mini,
	"gpt4all":  models.ModelGPT4All,
}

// AvailabilityService reports which models can actually serve a request.
// Cloud models are always listed; local models are filtered by what the
// Ollama endpoint has pulled, cached for a short TTL.
type AvailabilityService struct {
	cfg    *config.Config
	client *http.Client
	logger logging.Logger

	mu     sync.Mutex
	cached []models.ModelInfo
	expiry time.Time
}

// NewAvailabilityService creates an availability service
func NewAvailabilityService(cfg *config.Config) *AvailabilityService {
	return &AvailabilityService{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logging.GetGlobalLogger(),
	}
}

// AvailableModels returns the models currently usable for generation
func (s *AvailabilityService) AvailableModels(ctx context.Context) []models.ModelInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().Before(s.expiry) && s.cached != nil {
		return s.cached
	}

	local := s.localModels(ctx)

	var available []models.ModelInfo
	for _, m := range models.AllModels() {
		if m.IsLocal() && !local[m] {
			continue
		}
		available = append(available, models.ModelInfo{
			Model:    m,
			Provider: m.Provider(),
			Local:    m.IsLocal(),
		})
	}

	s.cached = available
	s.expiry = time.Now().Add(s.cfg.AI.ModelCacheTTL)
	return available
}

// Invalidate drops the cached model list
func (s *AvailabilityService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.expiry = time.Time{}
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// localModels queries the Ollama endpoint for pulled models. An unreachable
// endpoint just means no local models right now.
func (s *AvailabilityService) localModels(ctx context.Context) map[models.AIModel]bool {
	available := make(map[models.AIModel]bool)

	endpoint := strings.TrimRight(s.cfg.AI.LocalEndpoint, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return available
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("Local inference endpoint unreachable", map[string]interface{}{
			"endpoint": s.cfg.AI.LocalEndpoint,
			"error":    err.Error(),
		})
		return available
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return available
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return available
	}

	for _, m := range tags.Models {
		// "mistral:latest" and "mistral:7b" both count as mistral
		base := strings.SplitN(m.Name, ":", 2)[0]
		if model, ok := ollamaBaseNames[strings.ToLower(base)]; ok {
			available[model] = true
		}
	}

	return available
}
