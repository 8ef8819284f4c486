package invoicepdf

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	doc, err := Render(&buf, sampleInput(6))

	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, doc.Totals.GrandTotal.Equal(dec("3540")))
}

func TestRender_AllThemes(t *testing.T) {
	for _, theme := range []Theme{ThemeBasic, ThemeModern, ThemeFormal} {
		t.Run(string(theme), func(t *testing.T) {
			in := sampleInput(3)
			in.Seller.Theme = theme

			var buf bytes.Buffer
			_, err := Render(&buf, in)

			require.NoError(t, err)
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestRender_WithImages(t *testing.T) {
	in := sampleInput(2)
	in.Logo = pngBytes(t, 40, 20)
	in.Signature = pngBytes(t, 30, 15)

	var buf bytes.Buffer
	_, err := Render(&buf, in)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_BadImagesAreSkipped(t *testing.T) {
	in := sampleInput(2)
	in.Logo = []byte("definitely not an image")
	in.Signature = []byte{0x89, 'P', 'N', 'G'}

	var buf bytes.Buffer
	doc, err := Render(&buf, in)

	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())
	assert.NotZero(t, buf.Len())
}

func TestRender_FailureWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	doc, err := Render(&buf, sampleInput(0))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoLineItems))
	assert.Nil(t, doc)
	assert.Zero(t, buf.Len())
}

func TestRender_HSNOnlyPage(t *testing.T) {
	in := sampleInput(0)
	in.Items = distinctHSNItems(30)

	var buf bytes.Buffer
	doc, err := Render(&buf, in)

	require.NoError(t, err)
	assert.Equal(t, 4, doc.PageCount())
	assert.True(t, doc.Pages[3].HSNOnly)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRender_Deterministic(t *testing.T) {
	in := sampleInput(20)

	var a, b bytes.Buffer
	docA, err := Render(&a, in)
	require.NoError(t, err)
	docB, err := Render(&b, in)
	require.NoError(t, err)

	assert.Equal(t, docA.PageCount(), docB.PageCount())
	assert.True(t, docA.Totals.GrandTotal.Equal(docB.Totals.GrandTotal))
}

func TestRender_NonASCIIText(t *testing.T) {
	in := sampleInput(1)
	in.Items[0].Description = "Café crème ₹ special"

	var buf bytes.Buffer
	_, err := Render(&buf, in)
	require.NoError(t, err)
}
