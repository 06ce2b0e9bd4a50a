package admin

// ModelCost holds USD prices per million tokens for one model.
type ModelCost struct {
	Input  float64
	Output float64
}

// Cost computes the USD cost of one call.
func (m ModelCost) Cost(tokensIn, tokensOut int) float64 {
	return float64(tokensIn)/1_000_000*m.Input + float64(tokensOut)/1_000_000*m.Output
}

// TotalBudget is the monthly spend ceiling shown on the dashboard, in USD.
const TotalBudget = 2.00

// modelCosts maps model identifiers, with and without provider prefix, to
// their published per-million-token prices.
var modelCosts = map[string]ModelCost{
	"gpt-4o":                          {Input: 2.5, Output: 10},
	"openai/gpt-4o":                   {Input: 2.5, Output: 10},
	"gpt-4o-mini":                     {Input: 0.15, Output: 0.6},
	"openai/gpt-4o-mini":              {Input: 0.15, Output: 0.6},
	"claude-3.5-sonnet":               {Input: 3, Output: 15},
	"anthropic/claude-3.5-sonnet":     {Input: 3, Output: 15},
	"claude-3-haiku":                  {Input: 0.25, Output: 1.25},
	"anthropic/claude-3-haiku":        {Input: 0.25, Output: 1.25},
	"claude-3.5-haiku":                {Input: 0.25, Output: 1.25},
	"anthropic/claude-3.5-haiku":      {Input: 0.25, Output: 1.25},
}

// CostFor prices one call. Unknown models are billed at gpt-4o-mini rates
// rather than silently costing zero.
func CostFor(model string, tokensIn, tokensOut int) float64 {
	mc, ok := modelCosts[model]
	if !ok {
		mc = modelCosts["gpt-4o-mini"]
	}
	return mc.Cost(tokensIn, tokensOut)
}
