// internal/services/ai_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/config"
	"github.com/nexsy/nexsy-backend/internal/models"
	"github.com/nexsy/nexsy-backend/internal/stores"
)

// Token budget for the long-form generations (strategy, ad copies).
const longFormMaxTokens = 3000

// ChatCompleter is the slice of the OpenAI client the service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
	config *config.Config

	products   *stores.ProductStore
	strategies *stores.StrategyStore
	creatives  *stores.CreativeOutputStore
}

func NewAIService(cfg *config.Config, client ChatCompleter, products *stores.ProductStore, strategies *stores.StrategyStore, creatives *stores.CreativeOutputStore) *AIService {
	return &AIService{
		client:     client,
		config:     cfg,
		products:   products,
		strategies: strategies,
		creatives:  creatives,
	}
}

// Configured reports whether a generation client is wired in.
func (s *AIService) Configured() bool {
	return s.client != nil
}

func (s *AIService) ModelName() string {
	return s.config.OpenAI.Model
}

// Provenance of an autofill result.
const (
	AutofillSourceParsed   = "parsed"
	AutofillSourceFallback = "fallback"
)

type AutofillInput struct {
	ProductName   string  `json:"product_name" validate:"required"`
	WhatIsIt      string  `json:"what_is_it" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	TargetCountry string  `json:"target_country" validate:"required"`
}

// AutofillResult carries the generated fields together with how they
// were produced: parsed from the model output, or templated because
// the output was not valid JSON.
type AutofillResult struct {
	ProductDescription string `json:"product_description"`
	ProblemItSolves    string `json:"problem_it_solves"`
	TargetCustomers    string `json:"target_customers"`
	Source             string `json:"source"`
}

// AutofillProduct generates description, problem, and target-customer
// text from the four seed fields. Unparseable model output degrades to
// a templated fallback instead of failing the request.
func (s *AIService) AutofillProduct(ctx context.Context, in AutofillInput) (*AutofillResult, error) {
	prompt := fmt.Sprintf(`You are a marketing expert. Based on the following product information, generate detailed marketing content:

Product Name: %s
What it is: %s
Price: $%.2f
Target Country: %s

Please provide the following in JSON format:
{
    "product_description": "A detailed 2-3 sentence description of the product that highlights its key features and benefits",
    "problem_it_solves": "A clear explanation of the main problem this product solves for customers",
    "target_customers": "A detailed description of the ideal customers who would buy this product, including demographics and psychographics"
}

Make sure the content is engaging, market-appropriate for %s, and reflects the price point of $%.2f.`,
		in.ProductName, in.WhatIsIt, in.Price, in.TargetCountry, in.TargetCountry, in.Price)

	content, _, err := s.complete(ctx,
		"You are an expert marketing copywriter who creates compelling product descriptions and identifies target markets.",
		prompt, s.config.OpenAI.MaxTokens)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ProductDescription string `json:"product_description"`
		ProblemItSolves    string `json:"problem_it_solves"`
		TargetCustomers    string `json:"target_customers"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		logrus.WithError(err).Warn("Failed to parse autofill response, using fallback")
		return &AutofillResult{
			ProductDescription: fmt.Sprintf("High-quality %s designed to meet your needs with excellent value at $%.2f.", in.WhatIsIt, in.Price),
			ProblemItSolves:    fmt.Sprintf("Solves common challenges related to %s.", strings.ToLower(in.WhatIsIt)),
			TargetCustomers:    fmt.Sprintf("Customers in %s looking for reliable %s solutions.", in.TargetCountry, strings.ToLower(in.WhatIsIt)),
			Source:             AutofillSourceFallback,
		}, nil
	}

	logrus.WithField("product_name", in.ProductName).Info("Generated autofill content")
	return &AutofillResult{
		ProductDescription: parsed.ProductDescription,
		ProblemItSolves:    parsed.ProblemItSolves,
		TargetCustomers:    parsed.TargetCustomers,
		Source:             AutofillSourceParsed,
	}, nil
}

// GenerateMarketingStrategy produces and persists a strategy for the
// product: customer avatars plus a creative brief.
func (s *AIService) GenerateMarketingStrategy(ctx context.Context, ownerID, productID string) (*models.MarketingStrategy, error) {
	product, err := s.products.Get(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Create a comprehensive marketing strategy for this product:

%s

Please provide a detailed marketing strategy in the following JSON format:
{
    "product_infopack": {
        "customer_avatars": [
            {
                "label": "Primary Customer Segment Name",
                "description": "Detailed description of this customer segment including demographics, psychographics, pain points, and buying behavior"
            },
            {
                "label": "Secondary Customer Segment Name",
                "description": "Detailed description of this customer segment"
            }
        ]
    },
    "creative_brief": {
        "creative_angle": "The main creative angle/hook for marketing campaigns. Should be compelling and differentiated.",
        "visual_style_art_direction": "Detailed description of the visual style, color palette, tone, imagery style, and overall aesthetic direction for marketing materials"
    }
}

Make sure the strategy is:
- Specific to the %s market
- Appropriate for the $%.2f price point
- Aligned with the goal: %s
- Based on real market insights and consumer psychology`,
		productContext(product), product.TargetCountry, product.Price, product.MainGoal)

	content, responseID, err := s.complete(ctx,
		"You are a senior marketing strategist with expertise in customer segmentation, positioning, and creative strategy across global markets.",
		prompt, longFormMaxTokens)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ProductInfopack struct {
			CustomerAvatars []models.CustomerAvatar `json:"customer_avatars"`
		} `json:"product_infopack"`
		CreativeBrief models.CreativeBrief `json:"creative_brief"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		logrus.WithError(err).Error("Failed to parse marketing strategy response")
		return nil, fmt.Errorf("%w: unparseable strategy response", apperrors.ErrGenerationFailed)
	}

	strategy := &models.MarketingStrategy{
		ProductID:        productID,
		ProductInfopack:  &models.ProductInfoPack{CustomerAvatars: parsed.ProductInfopack.CustomerAvatars},
		CreativeBrief:    &parsed.CreativeBrief,
		OpenAIResponseID: responseID,
	}
	return s.strategies.Create(ctx, ownerID, strategy)
}

// GenerateAdCopies produces and persists a creative output with the
// requested number of ad-copy variations. The product's current
// strategy, when one exists, seeds the prompt.
func (s *AIService) GenerateAdCopies(ctx context.Context, ownerID, productID, tone string, numVariations int) (*models.CreativeOutput, error) {
	if tone == "" {
		tone = "professional"
	}
	if numVariations <= 0 {
		numVariations = 3
	}

	product, err := s.products.Get(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	strategyContext := ""
	strategy, err := s.strategies.GetForProduct(ctx, ownerID, productID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if strategy != nil {
		var b strings.Builder
		if strategy.ProductInfopack != nil && len(strategy.ProductInfopack.CustomerAvatars) > 0 {
			b.WriteString("\nTarget Customer Segments:\n")
			for _, avatar := range strategy.ProductInfopack.CustomerAvatars {
				fmt.Fprintf(&b, "- %s: %s\n", avatar.Label, avatar.Description)
			}
		}
		if strategy.CreativeBrief != nil {
			fmt.Fprintf(&b, "\nCreative Angle: %s", strategy.CreativeBrief.CreativeAngle)
			fmt.Fprintf(&b, "\nVisual Style: %s", strategy.CreativeBrief.VisualStyleArtDirection)
		}
		strategyContext = b.String()
	}

	prompt := fmt.Sprintf(`Create compelling ad copy variations for this product with a %s tone:

Product Information:
%s
%s

Please create %d different ad copy variations in JSON format:
{
    "creative_concept_title": "A catchy title for this creative concept/campaign",
    "creative_concept_description": "2-3 sentences explaining the overall creative concept and why it will work",
    "target_audience_summary": "Brief summary of who this targets and why",
    "why_this_works": "Explanation of the psychology and marketing principles that make this effective",
    "ad_copies": [
        {
            "variation_name": "Descriptive name for this variation (e.g., 'Social Proof Focus', 'Problem-Solution', 'Benefit-Driven')",
            "headline": "Compelling headline (max 60 characters for social media)",
            "body_text": "Main ad copy text (engaging, persuasive, appropriate length for digital ads)",
            "call_to_action": "Strong CTA button text",
            "platform_optimized": "facebook",
            "offer_value_proposition": "The key value proposition highlighted in this variation"
        }
    ]
}

Requirements:
- Use %s tone throughout
- Make it compelling for %s market
- Include emotional triggers and logical benefits
- Ensure headlines are catchy and memorable
- CTAs should be action-oriented
- Each variation should have a different approach/angle`,
		tone, productContext(product), strategyContext, numVariations, tone, product.TargetCountry)

	content, _, err := s.complete(ctx,
		fmt.Sprintf("You are an expert advertising copywriter specializing in %s tone and high-converting digital ad copy for various platforms.", tone),
		prompt, longFormMaxTokens)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		CreativeConceptTitle       string          `json:"creative_concept_title"`
		CreativeConceptDescription string          `json:"creative_concept_description"`
		TargetAudienceSummary      string          `json:"target_audience_summary"`
		WhyThisWorks               string          `json:"why_this_works"`
		AdCopies                   []models.AdCopy `json:"ad_copies"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		logrus.WithError(err).Error("Failed to parse creative output response")
		return nil, fmt.Errorf("%w: unparseable creative response", apperrors.ErrGenerationFailed)
	}
	if len(parsed.AdCopies) == 0 {
		logrus.Error("Creative output response contained no ad copies")
		return nil, fmt.Errorf("%w: creative response contained no ad copies", apperrors.ErrGenerationFailed)
	}

	for i := range parsed.AdCopies {
		if parsed.AdCopies[i].PlatformOptimized == "" {
			parsed.AdCopies[i].PlatformOptimized = "universal"
		}
	}

	output := &models.CreativeOutput{
		ProductID:                  productID,
		CreativeConceptTitle:       parsed.CreativeConceptTitle,
		CreativeConceptDescription: parsed.CreativeConceptDescription,
		TargetAudienceSummary:      parsed.TargetAudienceSummary,
		WhyThisWorks:               parsed.WhyThisWorks,
		AdCopies:                   parsed.AdCopies,
		Tone:                       tone,
	}
	return s.creatives.Create(ctx, ownerID, output)
}

// EnhanceProduct generates analysis fields and writes them back onto
// the product.
func (s *AIService) EnhanceProduct(ctx context.Context, ownerID, productID string) (*models.Product, error) {
	product, err := s.products.Get(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analyze this product and provide enhanced marketing insights:

%s

Please provide enhanced analysis in JSON format:
{
    "ai_analysis_summary": "A comprehensive 2-3 sentence analysis of the product's market position, competitive advantages, and overall potential",
    "ai_target_audience_profile": "A detailed profile of the ideal customer including demographics, psychographics, behavior patterns, and motivations",
    "ai_key_selling_points": [
        "First key selling point that differentiates this product",
        "Second unique value proposition",
        "Third compelling reason to buy",
        "Fourth benefit or feature that stands out"
    ]
}

Focus on:
- Unique value propositions
- Competitive differentiation
- Market positioning opportunities
- Customer pain points addressed
- Psychological triggers for %s market`,
		productContext(product), product.TargetCountry)

	content, _, err := s.complete(ctx,
		"You are a senior product marketing analyst with expertise in market positioning, customer psychology, and competitive analysis.",
		prompt, s.config.OpenAI.MaxTokens)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		AIAnalysisSummary       string   `json:"ai_analysis_summary"`
		AITargetAudienceProfile string   `json:"ai_target_audience_profile"`
		AIKeySellingPoints      []string `json:"ai_key_selling_points"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		logrus.WithError(err).Error("Failed to parse product analysis response")
		return nil, fmt.Errorf("%w: unparseable analysis response", apperrors.ErrGenerationFailed)
	}

	return s.products.Update(ctx, ownerID, productID, map[string]interface{}{
		"ai_analysis_summary":        parsed.AIAnalysisSummary,
		"ai_target_audience_profile": parsed.AITargetAudienceProfile,
		"ai_key_selling_points":      parsed.AIKeySellingPoints,
	})
}

// complete runs one chat completion with a per-attempt timeout and
// bounded retry on transient provider failures.
func (s *AIService) complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, string, error) {
	if s.client == nil {
		return "", "", fmt.Errorf("%w: generation provider is not configured", apperrors.ErrUpstreamUnavailable)
	}

	req := openai.ChatCompletionRequest{
		Model: s.config.OpenAI.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(s.config.OpenAI.Temperature),
	}

	timeout := time.Duration(s.config.OpenAI.RequestTimeout) * time.Second

	var resp openai.ChatCompletionResponse
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var err error
		resp, err = s.client.CreateChatCompletion(attemptCtx, req)
		if err == nil {
			return nil
		}
		if retryableCompletionError(err) {
			logrus.WithError(err).Warn("Transient generation failure, retrying")
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.config.OpenAI.MaxRetries)),
		ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		logrus.WithError(err).Error("Generation request failed")
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("%w: empty completion", apperrors.ErrGenerationFailed)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), resp.ID, nil
}

// retryableCompletionError classifies rate limiting and provider-side
// failures as transient.
func retryableCompletionError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	return false
}

// productContext serializes the product fields every prompt shares, in
// a fixed order.
func productContext(p *models.Product) string {
	return fmt.Sprintf(`Product Name: %s
Description: %s
Price: $%.2f %s
Target Country: %s
Main Goal: %s
Product Description: %s
Problem It Solves: %s
Target Customers: %s`,
		p.ProductName, p.WhatIsIt, p.Price, p.Currency, p.TargetCountry, p.MainGoal,
		orDefault(p.ProductDescription), orDefault(p.ProblemItSolves), orDefault(p.TargetCustomers))
}

func orDefault(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

// extractJSON strips markdown code fences and surrounding prose from a
// model reply, keeping the outermost JSON object.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
