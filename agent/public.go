package agent

import (
	"context"

	"github.com/lgaspar/carteira"
	"github.com/lgaspar/carteira/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Loader supplies the portfolio aggregate the accountant's tools operate on.
type Loader func() (*carteira.Aggregate, error)

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user is here primarily to understand his Brazilian investment portfolio:
			what he holds, what taxes are due, and what dividends are pending.

			Devise a plan of questions to each expert and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert grounding answers in live web searches.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		well aware of the B3 listed companies, real-estate funds and crypto markets,
		and of the latest CDI, SELIC and IPCA announcements.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the Brazilian financial markets. You can search and
			find anything related to listed companies, real-estate funds, crypto and
			the reference rates. You leverage Google Search to ground your assertions.
		`}}},
		},
	}
}

// NewAccountant creates the expert in charge of reading the user's portfolio.
func NewAccountant(load Loader) *Expert {
	lib := []Function{holdingTool(load), taxTool(load), pendencyTool(load)}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's
		portfolio ledger. He can report the holdings, the monthly capital-gains
		figures per asset class, and the pending dividends.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an accountant in charge of the user's portfolio ledger.
			Use the available tools to extract relevant information:
			  - the holdings and the cash per sleeve
			  - the monthly capital-gains tax report per asset class
			  - the pending dividends
			Figures are in Brazilian reais; months are written YYYY-MM.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// respond wraps a rendered report, or the failure to produce it, into a
// function response.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{}}
	if err != nil {
		resp.Response["error"] = err.Error()
		return resp
	}
	resp.Response["output"] = output
	return resp
}

func holdingTool(load Loader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings reports the cash available per sleeve and every held
			position with its invested and current value.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the portfolio's cash and positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			a, err := load()
			if err != nil {
				return respond(id, "Holdings", "", err)
			}
			return respond(id, "Holdings", renderer.HoldingMarkdown(a, carteira.Today()), nil)
		},
	}
}

func taxTool(load Loader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "TaxReport",
			Description: `TaxReport shows the monthly capital-gains figures of one asset
			class: gross sales, cost, result, loss carryforward, tax base and tax due.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"subtype": {
						Type:        genai.TypeString,
						Description: "The asset class: stock, fii or crypto.",
					},
				},
				Required: []string{"subtype"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the monthly capital-gains figures.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			raw, _ := args["subtype"].(string)
			subtype, err := carteira.ParseSubtype(raw)
			if err != nil {
				return respond(id, "TaxReport", "", err)
			}
			a, err := load()
			if err != nil {
				return respond(id, "TaxReport", "", err)
			}
			summaries := carteira.TaxSummary(a.Ledger, subtype, carteira.Today())
			return respond(id, "TaxReport", renderer.TaxMarkdown(subtype, summaries), nil)
		},
	}
}

func pendencyTool(load Loader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "PendingDividends",
			Description: `PendingDividends lists, per held instrument, the closed months
			for which no dividend has been recorded yet.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the pending dividends.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			a, err := load()
			if err != nil {
				return respond(id, "PendingDividends", "", err)
			}
			today := carteira.Today()
			pendencies := make(map[string][]carteira.Pendency)
			for _, p := range a.Positions {
				if p.IsFixed() {
					continue
				}
				pendencies[p.Name] = carteira.DividendPendencies(a.Ledger, p.Name, today)
			}
			return respond(id, "PendingDividends", renderer.PendenciesMarkdown(pendencies), nil)
		},
	}
}
