// Package fixture provides a small hand-built corpus shared by tests.
package fixture

import "strings"

// lines has 68 distinct lowercased tokens once padded with <s> and </s>.
// "there" occurs three times, "their" and "they're" twice each.
var lines = []string{
	"The source said there also is a problem with their plan for the new bridge downtown .",
	"He said that they're going home tonight after the long meeting ends .",
	"There is a small grey cat sleeping in the quiet garden behind our house .",
	"Their old dog barked loudly at the friendly mailman yesterday morning .",
	"I honestly think there will be heavy rain tomorrow across every northern valley .",
	"They're not sure whether the weather will change before spring arrives !",
}

// Sentences returns a fresh copy of the six tokenized fixture sentences.
func Sentences() [][]string {
	out := make([][]string, len(lines))
	for i, l := range lines {
		out[i] = strings.Fields(l)
	}
	return out
}
