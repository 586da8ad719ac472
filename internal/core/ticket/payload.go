package ticket

import (
	"fmt"
	"strings"
)

// PayloadFormat selects how the QR payment payload is encoded.
type PayloadFormat string

const (
	// PayloadStructured is the JSON-like payment string read by banking apps.
	PayloadStructured PayloadFormat = "structured"
	// PayloadDelimited is "<reference>_<amount>_<account>".
	PayloadDelimited PayloadFormat = "delimited"
)

// ParsePayloadFormat validates a configured format name.
func ParsePayloadFormat(raw string) (PayloadFormat, error) {
	switch f := PayloadFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case PayloadStructured, PayloadDelimited:
		return f, nil
	case "":
		return PayloadStructured, nil
	default:
		return "", fmt.Errorf("unknown QR payload format %q", raw)
	}
}

func structuredPayload(payee, reference, amount, account string) string {
	return `{"uqr":1,"tp":1,"nme":"` + payee + `","iref":"` + reference + `","due":` + amount + `,"pt":"BG","acc":"` + account + `"}`
}

func delimitedPayload(reference, amount, account string) string {
	return reference + "_" + amount + "_" + account
}
