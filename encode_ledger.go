package carteira

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger reads a stream of JSONL data, decodes each line into the
// appropriate entry struct, and returns a chronologically sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify kind in line %q: %w", string(lineBytes), err)
		}

		var decoded Entry
		var err error
		switch identifier.Kind {
		case KindDeposit:
			var e Deposit
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case KindPurchase:
			var e Purchase
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case KindSale:
			var e Sale
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case KindDividend:
			var e Dividend
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case KindTransfer:
			var e Transfer
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case KindTaxDebit:
			var e TaxDebit
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		default:
			return nil, fmt.Errorf("unknown entry kind %q in line %q", identifier.Kind, string(lineBytes))
		}
		if err != nil {
			return nil, fmt.Errorf("could not decode %s entry %q: %w", identifier.Kind, string(lineBytes), err)
		}
		ledger.Append(decoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger stream: %w", err)
	}
	return ledger, nil
}

// EncodeEntry writes a single entry as one JSONL line.
func EncodeEntry(w io.Writer, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal %s entry: %w", entry.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form, one entry per
// line, in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for entry := range l.Entries() {
		if err := EncodeEntry(w, entry); err != nil {
			return err
		}
	}
	return nil
}
