// Package quotes holds the built-in motivational quote list.
package quotes

import "math/rand"

var quotes = []string{
	"The best time to plant a tree was 20 years ago. The second best time is now.",
	"Success is not final, failure is not fatal: it is the courage to continue that counts.",
	"Believe you can and you're halfway there.",
	"Don't watch the clock; do what it does. Keep going.",
	"Everything you've ever wanted is on the other side of fear.",
	"The only way to do great work is to love what you do.",
	"Your limitation—it's only your imagination.",
	"Great things never come from comfort zones.",
}

// Random returns one quote from the built-in list.
func Random() string {
	return quotes[rand.Intn(len(quotes))]
}
