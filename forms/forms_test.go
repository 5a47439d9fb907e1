package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/model"
)

func TestTagTypeFormResultInput(t *testing.T) {
	r := TagTypeFormResult{Label: " Line Out ", Row: model.RowRival, PreSec: "2", PostSec: ""}
	in, err := r.Input()
	require.NoError(t, err)
	assert.Equal(t, "Line Out", in.Label)
	assert.Equal(t, model.RowRival, in.Row)
	assert.Equal(t, 2.0, in.PreSec)
	assert.Zero(t, in.PostSec)

	tag := model.NewTagType(in, 12)
	assert.Equal(t, "tag-line_out", tag.ID)
	assert.Equal(t, float64(model.DefaultPostSec), tag.PostSec)

	r.PostSec = "soon"
	_, err = r.Input()
	assert.Error(t, err)
}

func TestFormsBuild(t *testing.T) {
	var confirmed bool
	assert.NotNil(t, NewConfirmForm("Delete?", "", &confirmed))
	assert.NotNil(t, NewGameForm(&GameFormResult{}))
	assert.NotNil(t, NewCommentForm("Try @ 8:21", &CommentFormResult{}))
	assert.NotNil(t, NewFlagForm("Flags", []model.Flag{model.FlagDuda}, &FlagFormResult{}))

	tag := &TagTypeFormResult{}
	assert.NotNil(t, NewTagTypeForm("New tag", tag))
	assert.Equal(t, model.RowOwn, tag.Row)
}

func TestRequired(t *testing.T) {
	assert.Error(t, required("name")("  "))
	assert.NoError(t, required("name")("Pilar"))
}
