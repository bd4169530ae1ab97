package dialogue

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/catalog"
	"github.com/cartline-ai/shop-assistant/internal/llm"
	"github.com/cartline-ai/shop-assistant/internal/matcher"
	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/nlp"
	"github.com/cartline-ai/shop-assistant/internal/render"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
	"github.com/cartline-ai/shop-assistant/pkg/metrics"
)

// Error kinds reported on TurnResult. The conversation always continues;
// these are machine-readable context for the caller, not user text.
const (
	ErrKindCatalogUnavailable = "catalog_unavailable"
	ErrKindUnresolvedRef      = "unresolved_reference"
)

const maxActionCards = 3

// Config carries the resolver's tunables.
type Config struct {
	StoreBaseURL   string
	CatalogTimeout time.Duration
	LLMTimeout     time.Duration
}

// Resolver drives a single turn: it derives pending state from history,
// short-circuits confirmations, classifies the phase, and assembles a
// structured TurnResult. One request is one atomic transition; there is
// no internal multi-turn loop.
type Resolver struct {
	catalog catalog.Store
	llm     llm.Client
	cfg     Config
	log     *logger.Logger

	// pick selects a random index; overridable in tests.
	pick func(n int) int
}

// NewResolver creates a turn resolver. client may be nil, in which case
// every completion path uses its deterministic fallback.
func NewResolver(store catalog.Store, client llm.Client, cfg Config, log *logger.Logger) *Resolver {
	if cfg.CatalogTimeout <= 0 {
		cfg.CatalogTimeout = 5 * time.Second
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 15 * time.Second
	}
	return &Resolver{
		catalog: store,
		llm:     client,
		cfg:     cfg,
		log:     log,
		pick:    rand.Intn,
	}
}

// Resolve decides the response for one turn. It never returns an error:
// every failure is converted into a fallback result so the conversation
// continues.
func (r *Resolver) Resolve(ctx context.Context, query string, history []model.ChatMessage, lastShown []model.Product) *model.TurnResult {
	convCtx := ExtractContext(history, lastShown)

	// Pending purchase confirmations terminate the turn before any
	// classification.
	if convCtx.PendingPurchase != nil {
		if res := r.resolvePurchaseConfirmation(query, convCtx.PendingPurchase); res != nil {
			return res
		}
	} else if convCtx.PendingAction != "" {
		if res := r.resolveActionConfirmation(query, convCtx.PendingAction); res != nil {
			return res
		}
	}

	// Zero-cost canned replies skip the catalog and the LLM entirely.
	if reply, ok := QuickReply(query); ok {
		return &model.TurnResult{Reply: reply, Phase: model.PhaseGeneral}
	}

	phase := DetectPhase(query, history, convCtx)

	products, err := r.fetchCatalog(ctx)
	if err != nil {
		r.log.Warn("catalog fetch failed", zap.Error(err))
		return &model.TurnResult{
			Reply:        r.pickFrom(fallbackReplies),
			Phase:        model.PhaseGeneral,
			FallbackUsed: true,
			ErrorKind:    ErrKindCatalogUnavailable,
		}
	}

	if phase == model.PhaseGeneral {
		return r.resolveGeneral(ctx, query, history, products)
	}

	if nlp.IsVagueProductRequest(query) {
		return &model.TurnResult{
			Reply: r.pickFrom(clarifyingQuestions),
			Phase: model.PhaseRecommendation,
		}
	}

	if act := nlp.DetectAction(query); act != nil {
		return r.resolveAction(query, act, products)
	}

	if phase == model.PhaseComparison {
		return r.resolveComparison(ctx, query, products)
	}

	return r.resolveRecommendation(query, products)
}

// resolvePurchaseConfirmation handles yes/no against a pending purchase.
// Returns nil when the utterance is not a confirmation at all, so the
// turn falls through to normal routing.
func (r *Resolver) resolvePurchaseConfirmation(query string, pending *model.PendingPurchase) *model.TurnResult {
	switch nlp.DetectConfirmation(query) {
	case nlp.ConfirmYes:
		if pending.ProductID == "" {
			return &model.TurnResult{
				Reply:     "I'm sorry — I lost track of that product. Could you tell me again which one you'd like to buy?",
				Phase:     model.PhaseRecommendation,
				ErrorKind: ErrKindUnresolvedRef,
			}
		}
		return &model.TurnResult{
			Reply:    fmt.Sprintf("Great! Taking you to checkout for %s.", pending.Title),
			Redirect: r.checkoutURL(pending.ProductID),
			Phase:    model.PhaseRecommendation,
		}
	case nlp.ConfirmNo:
		return &model.TurnResult{
			Reply: r.pickFrom(continueReplies),
			Phase: model.PhaseRecommendation,
		}
	default:
		return nil
	}
}

// resolveActionConfirmation handles yes/no against a pending view/cart
// prompt. A "yes" never auto-resolves a pronoun to a concrete product;
// the user is asked to name it.
func (r *Resolver) resolveActionConfirmation(query string, action model.Action) *model.TurnResult {
	switch nlp.DetectConfirmation(query) {
	case nlp.ConfirmYes:
		verb := "view details for"
		if action == model.ActionCart {
			verb = "add to your cart"
		}
		return &model.TurnResult{
			Reply: fmt.Sprintf("Sure — which product would you like to %s?", verb),
			Phase: model.PhaseRecommendation,
		}
	case nlp.ConfirmNo:
		return &model.TurnResult{
			Reply: r.pickFrom(continueReplies),
			Phase: model.PhaseRecommendation,
		}
	default:
		return nil
	}
}

func (r *Resolver) resolveGeneral(ctx context.Context, query string, history []model.ChatMessage, products []model.Product) *model.TurnResult {
	// Second quick-reply pass: store-info answers that need catalog data.
	if reply, ok := QuickReplyWithCatalog(query, products); ok {
		return &model.TurnResult{Reply: reply, Phase: model.PhaseGeneral}
	}

	mentioned := matcher.FindMatching(query, products)
	req := llm.BuildGeneralRequest(query, history, mentioned)

	content, err := r.complete(ctx, req)
	if err != nil {
		return &model.TurnResult{
			Reply:        r.pickFrom(fallbackReplies),
			Phase:        model.PhaseGeneral,
			FallbackUsed: true,
		}
	}
	return &model.TurnResult{Reply: content, Phase: model.PhaseGeneral}
}

func (r *Resolver) resolveAction(query string, act *nlp.ActionRequest, products []model.Product) *model.TurnResult {
	if act.Vague {
		related := matcher.FindMatching(query, products)
		if len(related) > maxActionCards {
			related = related[:maxActionCards]
		}
		if len(related) == 0 {
			return &model.TurnResult{
				Reply:  fmt.Sprintf("Which product would you like to %s? Tell me the name and I'll set it up.", actionVerb(act.Action)),
				Phase:  model.PhaseRecommendation,
				Action: act.Action,
			}
		}
		// A buy that narrows to a single candidate asks for confirmation
		// instead of guessing at checkout.
		if act.Action == model.ActionBuy && len(related) == 1 {
			return &model.TurnResult{
				Reply:        PurchasePrompt(related[0].Title, related[0].Price),
				Phase:        model.PhaseRecommendation,
				Products:     related,
				ShowProducts: true,
				Action:       model.ActionBuy,
			}
		}
		return &model.TurnResult{
			Reply:        fmt.Sprintf("Which of these would you like to %s?", actionVerb(act.Action)),
			Phase:        model.PhaseRecommendation,
			Products:     related,
			ShowProducts: true,
			Action:       act.Action,
		}
	}

	best := matcher.FindBest(act.Target, products)
	if best == nil {
		result := &model.TurnResult{
			Reply:  fmt.Sprintf("I couldn't find %q in our catalog.", act.Target),
			Phase:  model.PhaseRecommendation,
			Action: act.Action,
		}
		if related := matcher.FindMatching(act.Target, products); len(related) > 0 {
			result.Reply += " Here's something close:"
			result.Products = related
			result.ShowProducts = true
		}
		return result
	}

	switch act.Action {
	case model.ActionBuy:
		// Buy with an explicit target goes straight to checkout, no
		// confirmation round-trip.
		return &model.TurnResult{
			Reply:    fmt.Sprintf("You got it — sending you to checkout for %s ($%.2f).", best.Title, best.Price),
			Redirect: r.checkoutURL(best.ID),
			Phase:    model.PhaseRecommendation,
			Action:   model.ActionBuy,
		}
	case model.ActionCart:
		return &model.TurnResult{
			Reply:        CartPrompt(best.Title, best.Price),
			Phase:        model.PhaseRecommendation,
			Products:     []model.Product{*best},
			ShowProducts: true,
			Action:       model.ActionCart,
		}
	default:
		return &model.TurnResult{
			Reply:        ViewPrompt(best.Title),
			Phase:        model.PhaseRecommendation,
			Products:     []model.Product{*best},
			ShowProducts: true,
			Action:       model.ActionView,
		}
	}
}

func (r *Resolver) resolveComparison(ctx context.Context, query string, products []model.Product) *model.TurnResult {
	cmp := nlp.DetectComparison(query)
	if cmp == nil {
		return r.resolveRecommendation(query, products)
	}

	left := matcher.FindBest(cmp.Left, products)
	right := matcher.FindBest(cmp.Right, products)

	if left == nil || right == nil {
		missing := []string{}
		if left == nil {
			missing = append(missing, fmt.Sprintf("%q", cmp.Left))
		}
		if right == nil {
			missing = append(missing, fmt.Sprintf("%q", cmp.Right))
		}
		result := &model.TurnResult{
			Reply: fmt.Sprintf("I couldn't find %s in our catalog, so I can't compare them.", strings.Join(missing, " or ")),
			Phase: model.PhaseComparison,
		}
		if related := matcher.FindMatching(query, products); len(related) > 0 {
			result.Reply += " Here's what we do have:"
			result.Products = related
			result.ShowProducts = true
		}
		return result
	}

	content, err := r.complete(ctx, llm.BuildComparisonRequest(*left, *right))
	if err != nil {
		return &model.TurnResult{
			Reply:        render.ComparisonFallback(*left, *right),
			Phase:        model.PhaseComparison,
			Products:     []model.Product{*left, *right},
			FallbackUsed: true,
		}
	}
	return &model.TurnResult{
		Reply:    content,
		Phase:    model.PhaseComparison,
		Products: []model.Product{*left, *right},
	}
}

func (r *Resolver) resolveRecommendation(query string, products []model.Product) *model.TurnResult {
	matches := matcher.FindMatching(query, products)
	priceRange := nlp.DetectPriceRange(query)
	keywords := nlp.ExtractProductKeywords(query)

	if len(matches) == 0 {
		switch {
		case priceRange != nil && len(keywords) > 0:
			return &model.TurnResult{
				Reply: fmt.Sprintf("I don't have any %s in that price range right now. Want to try a different budget?", strings.Join(keywords, " ")),
				Phase: model.PhaseRecommendation,
			}
		case priceRange != nil:
			return &model.TurnResult{
				Reply: "I don't have anything in that price range right now. Want to try a different budget?",
				Phase: model.PhaseRecommendation,
			}
		case len(keywords) > 0:
			return &model.TurnResult{
				Reply: fmt.Sprintf("I don't have %s in stock at the moment. Anything else I can look for?", strings.Join(keywords, " ")),
				Phase: model.PhaseRecommendation,
			}
		default:
			return &model.TurnResult{
				Reply: r.pickFrom(clarifyingQuestions),
				Phase: model.PhaseRecommendation,
			}
		}
	}

	if IsRecommendationStyled(query) || len(keywords) > 0 {
		return &model.TurnResult{
			Reply:        "Here's what I found:",
			Phase:        model.PhaseRecommendation,
			Products:     matches,
			ShowProducts: true,
		}
	}

	// Matches exist but the intent to see them was never stated; stay
	// conservative rather than over-recommend.
	return &model.TurnResult{
		Reply: "I'm not sure what you're asking — are you looking for product recommendations?",
		Phase: model.PhaseRecommendation,
	}
}

// fetchCatalog queries the catalog under its own deadline. On timeout the
// in-flight result is discarded and the fallback path takes over.
func (r *Resolver) fetchCatalog(ctx context.Context) ([]model.Product, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.CatalogTimeout)
	defer cancel()

	start := time.Now()
	products, err := r.catalog.FetchAll(fetchCtx)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordCatalogFetch(status, time.Since(start).Seconds())
	return products, err
}

// complete calls the completion service under its own deadline.
func (r *Resolver) complete(ctx context.Context, req *llm.CompletionRequest) (string, error) {
	if r.llm == nil {
		metrics.LLMFallbacksTotal.WithLabelValues("disabled").Inc()
		return "", fmt.Errorf("no completion client configured")
	}

	llmCtx, cancel := context.WithTimeout(ctx, r.cfg.LLMTimeout)
	defer cancel()

	start := time.Now()
	resp, err := r.llm.Complete(llmCtx, req)
	if err != nil {
		reason := "error"
		if llmCtx.Err() == context.DeadlineExceeded {
			reason = "timeout"
		}
		metrics.RecordLLMRequest(r.llm.Name(), reason, time.Since(start).Seconds())
		metrics.LLMFallbacksTotal.WithLabelValues(reason).Inc()
		r.log.Warn("completion call failed", zap.String("provider", r.llm.Name()), zap.Error(err))
		return "", err
	}
	metrics.RecordLLMRequest(r.llm.Name(), "ok", time.Since(start).Seconds())

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func (r *Resolver) checkoutURL(productID string) string {
	return r.cfg.StoreBaseURL + "/checkout/" + productID
}

func (r *Resolver) pickFrom(pool []string) string {
	return pool[r.pick(len(pool))]
}

func actionVerb(a model.Action) string {
	switch a {
	case model.ActionBuy:
		return "buy"
	case model.ActionCart:
		return "add to your cart"
	default:
		return "view"
	}
}
