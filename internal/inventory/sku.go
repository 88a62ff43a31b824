package inventory

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sequencePattern = regexp.MustCompile(`\d{4}`)

// ParsePrice converts a currency-formatted cell value to a float. Currency
// symbols and thousands separators are stripped; anything that still fails
// to parse yields 0.
func ParsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := strings.NewReplacer("£", "", "$", "", "€", "", ",", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// ExtractContainer returns the storage location segment of a SKU, the part
// before the first "-". Empty input yields "".
func ExtractContainer(sku string) string {
	if sku == "" {
		return ""
	}
	container, _, _ := strings.Cut(sku, "-")
	return container
}

// ExtractSequenceNumber returns the first run of exactly four digits in the
// SKU, or "" when there is none.
func ExtractSequenceNumber(sku string) string {
	if sku == "" {
		return ""
	}
	return sequencePattern.FindString(sku)
}

// BuildSKU assembles a SKU as {container}-{sequence}-{roundedPrice}. The
// sequence is zero-padded to four digits when it parses as a number.
func BuildSKU(container, sequence string, price float64) string {
	if n, err := strconv.Atoi(sequence); err == nil {
		sequence = fmt.Sprintf("%04d", n)
	}
	return fmt.Sprintf("%s-%s-%d", container, sequence, int(math.Round(price)))
}
