package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

func TestParse_TakeForms(t *testing.T) {
	tests := []struct {
		utterance string
		quant     domain.Quantifier
		form      domain.Form
	}{
		{"take the ball", domain.QuantThe, domain.FormBall},
		{"grasp a pyramid", domain.QuantAny, domain.FormPyramid},
		{"pick up any box", domain.QuantAny, domain.FormBox},
		{"take all bricks", domain.QuantAll, domain.FormBrick},
		{"take every thing", domain.QuantAll, domain.FormAny},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			parses, err := Parse(tt.utterance)
			require.NoError(t, err)
			require.Len(t, parses, 1)

			cmd := parses[0].Cmd
			assert.Equal(t, domain.VerbTake, cmd.Verb)
			assert.Equal(t, tt.quant, cmd.Entity.Quant)
			require.True(t, cmd.Entity.Object.IsLeaf())
			assert.Equal(t, tt.form, cmd.Entity.Object.Form)
		})
	}
}

func TestParse_LeafAttributes(t *testing.T) {
	parses, err := Parse("take the large white ball")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	obj := parses[0].Cmd.Entity.Object
	assert.Equal(t, domain.SizeLarge, obj.Size)
	assert.Equal(t, "white", obj.Color)
	assert.Equal(t, domain.FormBall, obj.Form)

	parses, err = Parse("take the big black ball")
	require.NoError(t, err)
	assert.Equal(t, domain.SizeLarge, parses[0].Cmd.Entity.Object.Size)
}

func TestParse_PutIt(t *testing.T) {
	parses, err := Parse("put it on the floor")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	cmd := parses[0].Cmd
	assert.Equal(t, domain.VerbPut, cmd.Verb)
	assert.Nil(t, cmd.Entity)
	assert.Equal(t, domain.RelOnTop, cmd.Location.Rel)
	assert.Equal(t, domain.FormFloor, cmd.Location.Entity.Object.Form)
}

func TestParse_MoveRelations(t *testing.T) {
	tests := []struct {
		utterance string
		rel       domain.Relation
	}{
		{"move the ball into the box", domain.RelInside},
		{"put the ball in the box", domain.RelInside},
		{"move the ball on top of the table", domain.RelOnTop},
		{"move the ball onto the table", domain.RelOnTop},
		{"move the ball left of the box", domain.RelLeftOf},
		{"move the ball to the left of the box", domain.RelLeftOf},
		{"move the ball to the right of the box", domain.RelRightOf},
		{"move the ball beside the box", domain.RelBeside},
		{"move the ball next to the box", domain.RelBeside},
		{"move the ball above the table", domain.RelAbove},
		{"move the ball under the table", domain.RelUnder},
		{"move the ball below the table", domain.RelUnder},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			parses, err := Parse(tt.utterance)
			require.NoError(t, err)
			require.Len(t, parses, 1)
			assert.Equal(t, domain.VerbMove, parses[0].Cmd.Verb)
			assert.Equal(t, tt.rel, parses[0].Cmd.Location.Rel)
		})
	}
}

func TestParse_AttachmentAmbiguity(t *testing.T) {
	// "the ball in the box" may be the moved entity (with "on the
	// table" as destination) or only "the ball" moves, into "the box on
	// the table".
	parses, err := Parse("put the ball in the box on the table")
	require.NoError(t, err)
	require.Len(t, parses, 2)

	var sawNestedEntity, sawNestedLocation bool
	for _, p := range parses {
		if !p.Cmd.Entity.Object.IsLeaf() {
			sawNestedEntity = true
			assert.Equal(t, domain.RelOnTop, p.Cmd.Location.Rel)
		} else {
			sawNestedLocation = true
			assert.Equal(t, domain.RelInside, p.Cmd.Location.Rel)
			assert.False(t, p.Cmd.Location.Entity.Object.IsLeaf())
		}
	}
	assert.True(t, sawNestedEntity, "missing the nested-entity reading")
	assert.True(t, sawNestedLocation, "missing the nested-location reading")
}

func TestParse_RelativeClauseInTake(t *testing.T) {
	parses, err := Parse("take the ball in the box")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	obj := parses[0].Cmd.Entity.Object
	require.False(t, obj.IsLeaf())
	assert.Equal(t, domain.FormBall, obj.Described.Form)
	assert.Equal(t, domain.RelInside, obj.Location.Rel)
	assert.Equal(t, domain.FormBox, obj.Location.Entity.Object.Form)
}

func TestParse_ThatIsGlue(t *testing.T) {
	parses, err := Parse("take the ball that is in the box")
	require.NoError(t, err)
	require.Len(t, parses, 1)
	assert.False(t, parses[0].Cmd.Entity.Object.IsLeaf())
}

func TestParse_UnknownWord(t *testing.T) {
	_, err := Parse("take the zeppelin")
	var engErr *domain.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, domain.ErrUnknownWord.Code, engErr.Code)
	assert.Contains(t, engErr.Message, "zeppelin")
}

func TestParse_NoCompleteParse(t *testing.T) {
	for _, utterance := range []string{
		"",
		"take",
		"take the",
		"move the ball",         // move needs a destination
		"the ball in the box",   // no verb
		"put it",                // put needs a destination
		"take the ball the box", // trailing junk
	} {
		t.Run(utterance, func(t *testing.T) {
			_, err := Parse(utterance)
			require.Error(t, err)
		})
	}
}

func TestParse_PluralAndCase(t *testing.T) {
	parses, err := Parse("Put all balls in all boxes.")
	require.NoError(t, err)
	require.Len(t, parses, 1)

	cmd := parses[0].Cmd
	assert.Equal(t, domain.QuantAll, cmd.Entity.Quant)
	assert.Equal(t, domain.FormBall, cmd.Entity.Object.Form)
	assert.Equal(t, domain.QuantAll, cmd.Location.Entity.Quant)
	assert.Equal(t, domain.FormBox, cmd.Location.Entity.Object.Form)
}
