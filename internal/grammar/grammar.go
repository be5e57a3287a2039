// Package grammar turns utterances into parsed command trees. The
// parser is a backtracking recursive descent over a closed lexicon and
// returns every complete reading: relative-clause attachment is
// genuinely ambiguous ("put the ball in the box on the table"), and
// disambiguation belongs to the interpreter, not the parser.
package grammar

import (
	"strings"
	"unicode"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

// Parse tokenizes an utterance and returns all complete parses.
func Parse(utterance string) ([]domain.Parse, error) {
	toks, err := tokenize(utterance)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, domain.ErrNoParse
	}

	var out []domain.Parse
	add := func(cmd domain.Command) {
		out = append(out, domain.Parse{Utterance: utterance, Cmd: cmd})
	}

	verb, pos := toks[0], 1
	switch verb {
	case "take", "grasp", "pick":
		if verb == "pick" {
			if len(toks) < 2 || toks[1] != "up" {
				return nil, domain.ErrNoParse
			}
			pos = 2
		}
		for _, e := range parseEntity(toks, pos) {
			if e.pos == len(toks) {
				add(domain.Command{Verb: domain.VerbTake, Entity: e.ent})
			}
		}

	case "put", "drop", "move":
		if len(toks) > 1 && toks[1] == "it" {
			for _, l := range parseLocation(toks, 2) {
				if l.pos == len(toks) {
					add(domain.Command{Verb: domain.VerbPut, Location: l.loc})
				}
			}
		}
		for _, e := range parseEntity(toks, pos) {
			for _, l := range parseLocation(toks, e.pos) {
				if l.pos == len(toks) {
					add(domain.Command{Verb: domain.VerbMove, Entity: e.ent, Location: l.loc})
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, domain.ErrNoParse
	}
	return out, nil
}

// tokenize lowercases, strips punctuation, and rejects words outside
// the lexicon.
func tokenize(utterance string) ([]string, error) {
	fields := strings.FieldsFunc(strings.ToLower(utterance), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '.' || r == '!' || r == '?'
	})
	for _, w := range fields {
		if !known(w) {
			return nil, domain.NewEngineError(domain.ErrUnknownWord.Code,
				"word is not in the lexicon: "+w)
		}
	}
	return fields, nil
}

type entRes struct {
	ent *domain.Entity
	pos int
}

type objRes struct {
	obj *domain.Object
	pos int
}

type locRes struct {
	loc *domain.Location
	pos int
}

// parseEntity reads a quantifier followed by an object description.
// "the floor" parses with the quantifier it was written with.
func parseEntity(toks []string, pos int) []entRes {
	if pos >= len(toks) {
		return nil
	}
	quant, ok := quantifiers[toks[pos]]
	if !ok {
		return nil
	}
	var out []entRes
	for _, o := range parseObject(toks, pos+1) {
		out = append(out, entRes{&domain.Entity{Quant: quant, Object: o.obj}, o.pos})
	}
	return out
}

// parseObject reads a leaf description and then attaches zero or more
// relative clauses. Each attachment round wraps every reading from the
// previous round, while the entity inside an attached location may
// itself have consumed later clauses, which is where the readings fork.
func parseObject(toks []string, pos int) []objRes {
	leaf, next, ok := parseLeaf(toks, pos)
	if !ok {
		return nil
	}
	results := []objRes{{leaf, next}}
	frontier := results
	for len(frontier) > 0 {
		var grown []objRes
		for _, r := range frontier {
			for _, l := range parseLocation(toks, skipGlue(toks, r.pos)) {
				grown = append(grown, objRes{
					obj: &domain.Object{Described: r.obj, Location: l.loc},
					pos: l.pos,
				})
			}
		}
		results = append(results, grown...)
		frontier = grown
	}
	return results
}

// parseLeaf reads size? color? form.
func parseLeaf(toks []string, pos int) (*domain.Object, int, bool) {
	obj := &domain.Object{Form: domain.FormAny}
	if pos < len(toks) {
		if sz, ok := sizes[toks[pos]]; ok {
			obj.Size = sz
			pos++
		}
	}
	if pos < len(toks) && colors[toks[pos]] {
		obj.Color = toks[pos]
		pos++
	}
	if pos >= len(toks) {
		return nil, pos, false
	}
	form, ok := forms[toks[pos]]
	if !ok {
		return nil, pos, false
	}
	obj.Form = form
	return obj, pos + 1, true
}

// parseLocation reads a relation phrase followed by an entity.
func parseLocation(toks []string, pos int) []locRes {
	rel, next, ok := matchRelation(toks, pos)
	if !ok {
		return nil
	}
	var out []locRes
	for _, e := range parseEntity(toks, next) {
		out = append(out, locRes{&domain.Location{Rel: rel, Entity: e.ent}, e.pos})
	}
	return out
}

// matchRelation matches the longest relation phrase at pos.
func matchRelation(toks []string, pos int) (domain.Relation, int, bool) {
	for _, p := range relationPhrases {
		if pos+len(p.words) > len(toks) {
			continue
		}
		match := true
		for i, w := range p.words {
			if toks[pos+i] != w {
				match = false
				break
			}
		}
		if match {
			return p.rel, pos + len(p.words), true
		}
	}
	return "", pos, false
}

// skipGlue steps over an optional "that is" / "that are".
func skipGlue(toks []string, pos int) int {
	if pos < len(toks) && toks[pos] == "that" {
		if pos+1 < len(toks) && (toks[pos+1] == "is" || toks[pos+1] == "are") {
			return pos + 2
		}
	}
	return pos
}
