package money

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
)

const (
	DefaultSymbol = "₱"
	DefaultLocale = "en-PH"
)

type separators struct{ group, decimal string }

var bySeparatorBase = map[string]separators{
	"en":  {",", "."},
	"fil": {",", "."},
	"ja":  {",", "."},
	"zh":  {",", "."},
	"de":  {".", ","},
	"es":  {".", ","},
	"id":  {".", ","},
	"it":  {".", ","},
	"nl":  {".", ","},
	"pt":  {".", ","},
	"fr":  {" ", ","},
}

// Formatter renders Money for display with a currency symbol and locale grouping.
type Formatter struct {
	Symbol string
	sep    separators
}

// NewFormatter resolves locale to digit separators. Unknown or malformed locales fall back to en.
func NewFormatter(symbol, locale string) Formatter {
	sep := bySeparatorBase["en"]
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		if s, ok := bySeparatorBase[base.String()]; ok {
			sep = s
		}
	}
	return Formatter{Symbol: symbol, sep: sep}
}

func DefaultFormatter() Formatter { return NewFormatter(DefaultSymbol, DefaultLocale) }

// Format returns e.g. "₱1,234.50". The sign follows the symbol, as in "₱-5.00".
func (f Formatter) Format(m Money) string {
	fixed := m.d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		n = big.NewInt(0)
	}
	grouped := humanize.BigComma(n)
	if f.sep.group != "," {
		grouped = strings.ReplaceAll(grouped, ",", f.sep.group)
	}

	var b strings.Builder
	b.WriteString(f.Symbol)
	if neg && (n.Sign() != 0 || strings.Trim(frac, "0") != "") {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteString(f.sep.decimal)
	b.WriteString(frac)
	return b.String()
}
