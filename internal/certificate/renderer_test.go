package certificate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(config.CertificateConfig{
		TemplatePath: filepath.Join(t.TempDir(), "template.png"),
		TextColor:    "#ffff00",
		FooterText:   "Jazakallahu khairan",
	})
	if err != nil {
		t.Fatalf("new renderer failed: %v", err)
	}
	return r
}

func TestRenderWithoutTemplateUsesPlainCanvas(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Data{DonorName: "Test Donor", Quantity: 3, GrandTotal: models.NewMoneyFromInt(300000)})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not jpeg: %v", err)
	}
	if img.Bounds().Dx() != fallbackWidth || img.Bounds().Dy() != fallbackHeight {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestRenderUsesUploadedTemplate(t *testing.T) {
	r := newTestRenderer(t)
	tpl := image.NewRGBA(image.Rect(0, 0, 580, 400))
	for i := range tpl.Pix {
		tpl.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, tpl); err != nil {
		t.Fatalf("encode template failed: %v", err)
	}
	if err := r.SaveTemplate(buf.Bytes()); err != nil {
		t.Fatalf("save template failed: %v", err)
	}

	out, err := r.Render(Data{DonorName: "ahmad", Quantity: 1, GrandTotal: models.NewMoneyFromInt(100000)})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 580 || img.Bounds().Dy() != 400 {
		t.Fatalf("certificate should keep template size, got %v", img.Bounds())
	}
	if !hasYellowPixel(img) {
		t.Fatalf("expected yellow text to be drawn")
	}
}

func TestSaveTemplateRejectsNonImage(t *testing.T) {
	r := newTestRenderer(t)
	if err := r.SaveTemplate([]byte("not an image")); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("want ErrInvalidTemplate got %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#ff0")
	if err != nil || got != (color.RGBA{R: 255, G: 255, B: 0, A: 255}) {
		t.Fatalf("unexpected color %v %v", got, err)
	}
	if _, err := ParseHexColor("yellow"); err == nil {
		t.Fatalf("named colors are not supported")
	}
}

func hasYellowPixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r > 0xc000 && g > 0xc000 && bl < 0x6000 {
				return true
			}
		}
	}
	return false
}
