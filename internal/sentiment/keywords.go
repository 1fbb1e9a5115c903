package sentiment

import (
	"regexp"
	"sort"
	"strings"
)

var wordRegex = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Keywords returns the n most frequent words of three or more letters,
// lowercased and without stopwords. Ties keep first-appearance order.
func Keywords(text string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	counts := map[string]int{}
	var order []string
	for _, word := range wordRegex.FindAllString(strings.ToLower(text), -1) {
		if stopwords[word] {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return append([]string{}, order...)
}

var stopwords = toSet(`i me my myself we our ours ourselves you your yours yourself yourselves he him his
himself she her hers herself it its itself they them their theirs themselves what which who whom this
that these those am is are was were be been being have has had having do does did doing a an the and
but if or because as until while of at by for with about against between into through during before
after above below to from up down in out on off over under again further then once here there when
where why how all any both each few more most other some such no nor not only own same so than too
very s t can will just don should now d ll m o re ve y ain aren couldn didn doesn hadn hasn haven isn
ma mightn mustn needn shan shouldn wasn weren won wouldn also get got would could really much even`)

func toSet(words string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
