package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"webcv-utils/internal/ai"
	"webcv-utils/internal/ai/parser"
	"webcv-utils/internal/ai/prompts"
	"webcv-utils/internal/config"
	"webcv-utils/internal/logging"
	"webcv-utils/internal/scraper"
	"webcv-utils/internal/store"
	"webcv-utils/pkg/models"
	"webcv-utils/pkg/utils"
)

// AdapterResolver resolves a model choice into a ready provider adapter
type AdapterResolver interface {
	Resolve(ctx context.Context, userID, requestedModel string) (ai.Provider, models.AIModel, error)
	NewRequest(model models.AIModel, system, prompt string) ai.Request
}

// GenerationResult is one generated application before persistence
type GenerationResult struct {
	CoverLetter string
	Resume      *models.TailoredResumeResult
	Degraded    bool
	Model       models.AIModel
}

// Orchestrator drives the full pipeline: fetch the posting, generate the
// cover letter and tailored resume, persist the result
type Orchestrator struct {
	cfg     *config.Config
	engines scraper.EngineFactory
	cache   *utils.JobPostingCache
	factory AdapterResolver
	store   store.Store
	logger  logging.Logger
}

// New creates an orchestrator
func New(cfg *config.Config, engines scraper.EngineFactory, cache *utils.JobPostingCache, factory AdapterResolver, st store.Store) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		engines: engines,
		cache:   cache,
		factory: factory,
		store:   st,
		logger:  logging.GetGlobalLogger(),
	}
}

// FetchJobDetails fetches and normalizes a job posting, consulting the
// posting cache first. Returns the posting, the engine used and whether it
// was served from cache.
func (o *Orchestrator) FetchJobDetails(ctx context.Context, url string, opts *models.FetchOptions) (*models.JobPosting, string, bool, error) {
	if opts == nil || !opts.NoCache {
		if posting := o.cache.Get(ctx, url); posting != nil {
			o.logger.Debug("Posting served from cache", map[string]interface{}{"url": url})
			return posting, "cache", true, nil
		}
	}

	engineName := o.cfg.Scraper.Engine
	if opts != nil && opts.Engine != "" {
		engineName = opts.Engine
	}

	engine, err := o.engines.CreateEngine(engineName)
	if err != nil {
		return nil, engineName, false, utils.NewFetchError(err.Error(), err)
	}
	defer engine.Cleanup()

	posting, err := engine.ScrapeJob(ctx, url, opts)
	if err != nil {
		return nil, engine.Name(), false, err
	}

	o.cache.Set(ctx, posting)
	return posting, engine.Name(), false, nil
}

// GenerateApplication generates both documents for a fetched posting.
// Cloud providers take the cover letter and the resume concurrently; the
// Local provider runs them one after the other so a single local runtime
// never serves two inference requests at once.
func (o *Orchestrator) GenerateApplication(ctx context.Context, userID, requestedModel string, job *models.JobPosting) (*GenerationResult, error) {
	profile, err := o.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	provider, model, err := o.factory.Resolve(ctx, userID, requestedModel)
	if err != nil {
		return nil, err
	}

	coverReq := o.factory.NewRequest(model, prompts.System(prompts.TaskCoverLetter), prompts.Build(profile, job, prompts.TaskCoverLetter))
	resumeReq := o.factory.NewRequest(model, prompts.System(prompts.TaskResume), prompts.Build(profile, job, prompts.TaskResume))

	o.logger.Info("Generating application", map[string]interface{}{
		"user_id":  userID,
		"model":    string(model),
		"provider": string(provider.Name()),
		"job":      job.Title,
		"company":  job.CompanyName,
	})
	start := time.Now()

	var coverLetter, rawResume string
	if model.IsLocal() {
		coverLetter, err = provider.GenerateCoverLetter(ctx, coverReq)
		if err != nil {
			return nil, err
		}
		rawResume, err = provider.GenerateTailoredResume(ctx, resumeReq)
		if err != nil {
			return nil, err
		}
	} else {
		g := new(errgroup.Group)
		g.Go(func() error {
			var genErr error
			coverLetter, genErr = provider.GenerateCoverLetter(ctx, coverReq)
			return genErr
		})
		g.Go(func() error {
			var genErr error
			rawResume, genErr = provider.GenerateTailoredResume(ctx, resumeReq)
			return genErr
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	outcome := parser.ParseWithFallback(rawResume, profile, job)
	if outcome.Degraded {
		o.logger.Warn("Resume tailoring degraded to original profile", map[string]interface{}{
			"user_id": userID,
			"model":   string(model),
			"error":   outcome.Err.Error(),
		})
	}

	o.logger.Info("Application generated", map[string]interface{}{
		"user_id":         userID,
		"model":           string(model),
		"degraded":        outcome.Degraded,
		"processing_time": time.Since(start).String(),
	})

	return &GenerationResult{
		CoverLetter: coverLetter,
		Resume:      outcome.Result,
		Degraded:    outcome.Degraded,
		Model:       model,
	}, nil
}

// GenerateFromURL fetches the posting then generates the application. A
// fetch failure aborts before any provider call.
func (o *Orchestrator) GenerateFromURL(ctx context.Context, userID, requestedModel, url string, opts *models.FetchOptions) (*GenerationResult, *models.JobPosting, error) {
	job, _, _, err := o.FetchJobDetails(ctx, url, opts)
	if err != nil {
		return nil, nil, err
	}

	result, err := o.GenerateApplication(ctx, userID, requestedModel, job)
	if err != nil {
		return nil, job, err
	}
	return result, job, nil
}

// SaveApplication persists a generated application and returns the stored
// record
func (o *Orchestrator) SaveApplication(ctx context.Context, userID string, job *models.JobPosting, result *GenerationResult) (*models.GeneratedApplication, error) {
	resumeJSON, err := json.Marshal(result.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tailored resume: %w", err)
	}

	app := &models.GeneratedApplication{
		ID:             utils.GenerateApplicationID(),
		UserID:         userID,
		JobTitle:       job.Title,
		CompanyName:    job.CompanyName,
		JobURL:         job.URL,
		Model:          string(result.Model),
		CoverLetter:    result.CoverLetter,
		TailoredResume: string(resumeJSON),
		Degraded:       result.Degraded,
		CreatedAt:      time.Now(),
	}

	if err := o.store.SaveApplication(ctx, app); err != nil {
		return nil, err
	}

	o.logger.Info("Application saved", map[string]interface{}{
		"application_id": app.ID,
		"user_id":        userID,
	})
	return app, nil
}
