package carteira

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const brapiTokenEnv = "BRAPI_TOKEN"

var brapiTokenFlag = flag.String("brapi-token", "", "brapi.dev token to use for fetching B3 and crypto quotes.\n If missing it will read the environment variable \""+brapiTokenEnv+"\". You can get one at https://brapi.dev/")

func brapiToken() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *brapiTokenFlag == "" {
		*brapiTokenFlag = os.Getenv(brapiTokenEnv)
	}
	return *brapiTokenFlag
}

/*
	{
	  "results": [
	    {
	      "symbol": "HGLG11",
	      "regularMarketPrice": 160.2,
	      ...
	    }
	  ]
	}
*/
func brapiLatest(client *http.Client, symbol string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("https://brapi.dev/api/quote/%s?token=%s", url.PathEscape(symbol), url.QueryEscape(brapiToken()))
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	path := "$.results[0].regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %s %v", symbol, path, "not a float", jval)
	}
	return decimal.NewFromFloat(val), nil
}
