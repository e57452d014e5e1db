package engine

var smallNumbers = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{"", "", "twenty", "thirty", "forty", "fifty"}

// cardinal spells n in English, hyphenating compound tens ("twenty-one").
// n must be in [0, 59]; the phrase generator never asks for more.
func cardinal(n int) string {
	if n < len(smallNumbers) {
		return smallNumbers[n]
	}
	word := tens[n/10]
	if n%10 != 0 {
		word += "-" + smallNumbers[n%10]
	}
	return word
}
