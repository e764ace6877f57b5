package certificate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png" // 模板支持 PNG
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wakaf-tunai/internal/config"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/models"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	fallbackWidth  = 1600
	fallbackHeight = 1131
	// 姓名与金额行的左边距为宽度的 1/29
	leftMarginDivisor = 29
)

// ErrInvalidTemplate 模板无法解码为图片
var ErrInvalidTemplate = errors.New("invalid certificate template")

// Data 证书内容
type Data struct {
	DonorName  string
	Quantity   int
	GrandTotal models.Money
}

// Renderer 基于模板图片绘制捐赠证书
type Renderer struct {
	templatePath string
	textColor    color.RGBA
	footerText   string
	nameSize     float64
	bodySize     float64
	quality      int
	boldFont     *truetype.Font
	regularFont  *truetype.Font
}

// NewRenderer 解析字体与颜色配置
func NewRenderer(cfg config.CertificateConfig) (*Renderer, error) {
	bold, err := freetype.ParseFont(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	textColor, err := ParseHexColor(cfg.TextColor)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		templatePath: cfg.TemplatePath,
		textColor:    textColor,
		footerText:   strings.TrimSpace(cfg.FooterText),
		nameSize:     cfg.NameFontSize,
		bodySize:     cfg.BodyFontSize,
		quality:      cfg.JPEGQuality,
		boldFont:     bold,
		regularFont:  regular,
	}
	if r.nameSize <= 0 {
		r.nameSize = 55
	}
	if r.bodySize <= 0 {
		r.bodySize = 48
	}
	if r.quality <= 0 || r.quality > 100 {
		r.quality = jpeg.DefaultQuality
	}
	return r, nil
}

// Render 输出 JPEG 证书
func (r *Renderer) Render(data Data) ([]byte, error) {
	canvas, err := r.loadCanvas()
	if err != nil {
		return nil, err
	}
	bounds := canvas.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	left := width / leftMarginDivisor

	r.drawText(canvas, r.boldFont, r.nameSize, strings.ToUpper(strings.TrimSpace(data.DonorName)), left, height*75/100)
	amount := fmt.Sprintf("%d Pcs = Rp %s", data.Quantity, data.GrandTotal.Rupiah())
	r.drawText(canvas, r.boldFont, r.bodySize, amount, left, height*85/100)
	if r.footerText != "" {
		face := r.face(r.regularFont, r.bodySize*0.75)
		advance := font.MeasureString(face, r.footerText).Ceil()
		r.drawText(canvas, r.regularFont, r.bodySize*0.75, r.footerText, (width-advance)/2, height*95/100)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: r.quality}); err != nil {
		return nil, fmt.Errorf("encode certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveTemplate 校验并替换模板文件
func (r *Renderer) SaveTemplate(raw []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if err := os.MkdirAll(filepath.Dir(r.templatePath), 0o755); err != nil {
		return err
	}
	tmp := r.templatePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.templatePath)
}

// loadCanvas 每次渲染重新读取模板，模板缺失时使用纯色底图
func (r *Renderer) loadCanvas() (*image.RGBA, error) {
	raw, err := os.ReadFile(r.templatePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read template: %w", err)
		}
		logger.Warnw("certificate_template_missing", "path", r.templatePath)
		return plainCanvas(), nil
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)
	return canvas, nil
}

func plainCanvas() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, fallbackWidth, fallbackHeight))
	for y := 0; y < fallbackHeight; y++ {
		shade := uint8(40 + y*60/fallbackHeight)
		row := color.RGBA{R: 10, G: shade + 40, B: 30, A: 255}
		for x := 0; x < fallbackWidth; x++ {
			canvas.SetRGBA(x, y, row)
		}
	}
	return canvas
}

func (r *Renderer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// drawText 以 y 作为文字垂直中线绘制单行文本
func (r *Renderer) drawText(dst *image.RGBA, f *truetype.Font, size float64, text string, x, y int) {
	face := r.face(f, size)
	defer face.Close()
	metrics := face.Metrics()
	baseline := fixed.I(y) + (metrics.Ascent-metrics.Descent)/2
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.textColor),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: baseline},
	}
	d.DrawString(text)
}

// ParseHexColor 解析 #rrggbb 或 #rgb
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
