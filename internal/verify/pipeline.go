package verify

import (
	"context"
	"fmt"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/llm"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
)

// Pipeline runs one feed request end to end: prompt the search-augmented
// model, extract ground-truth citations, normalize asserted claims, cross
// reference them, and assemble the response contract.
//
// All pipeline state is request-scoped; nothing persists across requests.
type Pipeline struct {
	provider   llm.Provider
	extractor  *CitationExtractor
	normalizer *ClaimNormalizer
	matcher    *Matcher
	builder    *ReportBuilder
	llmCfg     model.LLMConfig
}

// NewPipeline creates a pipeline around the given provider
func NewPipeline(provider llm.Provider, llmCfg model.LLMConfig, probeCfg model.ProbeConfig) *Pipeline {
	return &Pipeline{
		provider:   provider,
		extractor:  NewCitationExtractor(),
		normalizer: NewClaimNormalizer(),
		matcher:    NewMatcher(NewURLProber(probeCfg)),
		builder:    NewReportBuilder(),
		llmCfg:     llmCfg,
	}
}

// Run executes the pipeline for one feed request. The only error it returns
// is an upstream provider failure, which the HTTP layer surfaces as a
// gateway-level error; zero verified claims is a valid success outcome.
func (p *Pipeline) Run(ctx context.Context, req model.FeedRequest) (*model.FeedResponse, error) {
	resp, err := p.provider.Search(ctx, llm.SearchRequest{
		Prompt:      llm.BuildSearchPrompt(req),
		Model:       p.llmCfg.Model,
		MaxTokens:   p.llmCfg.MaxTokens,
		MaxSearches: p.llmCfg.MaxSearches,
	})
	if err != nil {
		return nil, fmt.Errorf("upstream model: %w", err)
	}

	return p.Verify(ctx, resp.Content, req), nil
}

// Verify runs the verification stages over an already-fetched response.
// Split out from Run so the stages can be exercised without a provider.
func (p *Pipeline) Verify(ctx context.Context, blocks []model.ContentBlock, req model.FeedRequest) *model.FeedResponse {
	citations := p.extractor.Extract(blocks)
	claims := p.normalizer.Normalize(blocks, citations, req)
	results := p.matcher.Match(ctx, claims, citations)
	return p.builder.Build(blocks, citations, results)
}
