// Package emit turns finished calibration tables into text: the source lines
// of the fixed-point log routine, or a JSON dump of the raw constants. It is
// a pure formatting transform over the tables.
package emit

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/logcal/logcal-go/calib"
	"github.com/logcal/logcal-go/libs/jsonx"
)

const indent = "        "

// Function renders the body of the log routine: the upper-bound assert, one
// conditional reduction statement per breakpoint after the first, and the
// Horner accumulation of the series terms. Hex literals are zero-padded to
// the widest value in their column so the block lines up in the target file.
// The tables must be finished, with at least one breakpoint and one series
// term, as every result of calib.Calibrate is.
func Function(t calib.Tables) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sassert(x < %#x);\n", indent, t.Hi[0].Exp.ToBig())

	reduce := t.Hi[1:]
	if len(reduce) > 0 {
		valW := hexWidth(reduce, func(h calib.HiTerm) *uint256.Int { return h.Val })
		expW := hexWidth(reduce, func(h calib.HiTerm) *uint256.Int { return h.Exp })
		for _, term := range reduce {
			exp := pad(term.Exp, expW)
			fmt.Fprintf(&b, "%sif (x >= %s) {res += %s; x = x * FIXED_ONE / %s;}\n",
				indent, exp, pad(term.Val, valW), exp)
		}
	}

	b.WriteString("\n")
	b.WriteString(indent + "assert(x >= FIXED_ONE);\n")
	b.WriteString(indent + "z = y = x - FIXED_ONE;\n")
	b.WriteString(indent + "w = y * y / FIXED_ONE;\n")

	numW := hexWidth(t.Lo, func(l calib.LoTerm) *uint256.Int { return l.Num })
	denW := hexWidth(t.Lo, func(l calib.LoTerm) *uint256.Int { return l.Den })
	for _, term := range t.Lo[:len(t.Lo)-1] {
		fmt.Fprintf(&b, "%sres += z * (%s - y) / %s; z = z * w / FIXED_ONE;\n",
			indent, pad(term.Num, numW), pad(term.Den, denW))
	}
	last := t.Lo[len(t.Lo)-1]
	fmt.Fprintf(&b, "%sres += z * (%s - y) / %s;\n",
		indent, pad(last.Num, numW), pad(last.Den, denW))
	return b.String()
}

// Document is the JSON shape of a calibration result. All fixed-point values
// are rendered as 0x-prefixed hex strings.
type Document struct {
	Precision    int64       `json:"precision"`
	NumOfHiTerms int64       `json:"numOfHiTerms"`
	One          string      `json:"one"`
	MaxVal       string      `json:"maxVal"`
	HiTerms      []HiTermDoc `json:"hiTerms"`
	LoTerms      []LoTermDoc `json:"loTerms"`
}

type HiTermDoc struct {
	Val string `json:"val"`
	Exp string `json:"exp"`
}

type LoTermDoc struct {
	Num string `json:"num"`
	Den string `json:"den"`
}

// JSON renders the tables as an indented JSON document.
func JSON(t calib.Tables, cfg calib.Config) ([]byte, error) {
	doc := Document{
		Precision:    int64(cfg.Precision),
		NumOfHiTerms: int64(cfg.NumOfHiTerms),
		One:          t.One.Hex(),
		MaxVal:       t.MaxVal.Hex(),
	}
	for _, h := range t.Hi {
		doc.HiTerms = append(doc.HiTerms, HiTermDoc{Val: h.Val.Hex(), Exp: h.Exp.Hex()})
	}
	for _, l := range t.Lo {
		doc.LoTerms = append(doc.LoTerms, LoTermDoc{Num: l.Num.Hex(), Den: l.Den.Hex()})
	}
	return jsonx.Marshal(doc)
}

// hexWidth returns the widest "0x..." rendering among the extracted values.
func hexWidth[T any](terms []T, get func(T) *uint256.Int) int {
	w := 0
	for _, t := range terms {
		if l := len(fmt.Sprintf("%#x", get(t).ToBig())); l > w {
			w = l
		}
	}
	return w
}

// pad renders v as hex, zero-padded to width w counting the 0x prefix.
func pad(v *uint256.Int, w int) string {
	return fmt.Sprintf("%#0*x", w, v.ToBig())
}
