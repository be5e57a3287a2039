package grammar

import "github.com/anthropics/blocksworld-engine/internal/domain"

// The command language has a closed lexicon. Every surface word must
// appear in one of the tables below; anything else is rejected before
// parsing starts.

var quantifiers = map[string]domain.Quantifier{
	"the":   domain.QuantThe,
	"a":     domain.QuantAny,
	"an":    domain.QuantAny,
	"any":   domain.QuantAny,
	"all":   domain.QuantAll,
	"every": domain.QuantAll,
}

var sizes = map[string]domain.Size{
	"small": domain.SizeSmall,
	"tiny":  domain.SizeSmall,
	"large": domain.SizeLarge,
	"big":   domain.SizeLarge,
}

var colors = map[string]bool{
	"black":  true,
	"white":  true,
	"red":    true,
	"green":  true,
	"blue":   true,
	"yellow": true,
}

var forms = map[string]domain.Form{
	"brick":    domain.FormBrick,
	"bricks":   domain.FormBrick,
	"plank":    domain.FormPlank,
	"planks":   domain.FormPlank,
	"ball":     domain.FormBall,
	"balls":    domain.FormBall,
	"pyramid":  domain.FormPyramid,
	"pyramids": domain.FormPyramid,
	"box":      domain.FormBox,
	"boxes":    domain.FormBox,
	"table":    domain.FormTable,
	"tables":   domain.FormTable,
	"floor":    domain.FormFloor,
	"object":   domain.FormAny,
	"objects":  domain.FormAny,
	"thing":    domain.FormAny,
	"things":   domain.FormAny,
	"form":     domain.FormAny,
	"forms":    domain.FormAny,
}

// relationPhrases are tried longest-first at each position, so
// "on top of" wins over "on".
var relationPhrases = []struct {
	words []string
	rel   domain.Relation
}{
	{[]string{"to", "the", "left", "of"}, domain.RelLeftOf},
	{[]string{"to", "the", "right", "of"}, domain.RelRightOf},
	{[]string{"on", "top", "of"}, domain.RelOnTop},
	{[]string{"left", "of"}, domain.RelLeftOf},
	{[]string{"right", "of"}, domain.RelRightOf},
	{[]string{"next", "to"}, domain.RelBeside},
	{[]string{"beside"}, domain.RelBeside},
	{[]string{"above"}, domain.RelAbove},
	{[]string{"under"}, domain.RelUnder},
	{[]string{"below"}, domain.RelUnder},
	{[]string{"inside"}, domain.RelInside},
	{[]string{"into"}, domain.RelInside},
	{[]string{"in"}, domain.RelInside},
	{[]string{"onto"}, domain.RelOnTop},
	{[]string{"on"}, domain.RelOnTop},
}

// functionWords closes the vocabulary: verbs, glue, and every word used
// by a relation phrase.
var functionWords = map[string]bool{
	"take": true, "grasp": true, "pick": true, "up": true,
	"put": true, "drop": true, "move": true, "it": true,
	"that": true, "is": true, "are": true,
	"on": true, "top": true, "of": true, "to": true,
	"left": true, "right": true, "next": true, "beside": true,
	"above": true, "under": true, "below": true,
	"inside": true, "into": true, "in": true, "onto": true,
}

// known reports whether a surface word belongs to the lexicon.
func known(word string) bool {
	if functionWords[word] || colors[word] {
		return true
	}
	if _, ok := quantifiers[word]; ok {
		return true
	}
	if _, ok := sizes[word]; ok {
		return true
	}
	_, ok := forms[word]
	return ok
}
