package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 1024
	defaultJPEGQuality  = 85
)

var ErrUnsupportedImage = errors.New("media: unsupported image")

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// ImagingProcessor downsizes images in-process. Images already inside the
// bounding box are passed through untouched. WebP input is re-encoded as JPEG
// when it has to be resized since imaging has no WebP encoder.
type ImagingProcessor struct {
	maxDimension int
	jpegQuality  int
}

func NewImagingProcessor(maxDimension int) *ImagingProcessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ImagingProcessor{maxDimension: maxDimension, jpegQuality: defaultJPEGQuality}
}

func (p *ImagingProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("%w: empty reader", ErrUnsupportedImage)
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", ErrUnsupportedImage)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}

	limit := maxDimension
	if limit <= 0 {
		limit = p.maxDimension
	}
	contentType := normalizeContentType(upload.ContentType, upload.FileName, format)
	if cfg.Width <= limit && cfg.Height <= limit {
		return &Result{Bytes: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	resized := imaging.Fit(img, limit, limit, imaging.Lanczos)

	outFormat, outType := encoderFor(contentType)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, outFormat, imaging.JPEGQuality(p.jpegQuality)); err != nil {
		return nil, fmt.Errorf("media: encode: %w", err)
	}

	bounds := resized.Bounds()
	return &Result{
		Bytes:       buf.Bytes(),
		ContentType: outType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Resized:     true,
	}, nil
}

// Extension maps a content type to the file suffix used for object names.
func Extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func encoderFor(contentType string) (imaging.Format, string) {
	switch contentType {
	case "image/png":
		return imaging.PNG, "image/png"
	case "image/gif":
		return imaging.GIF, "image/gif"
	default:
		return imaging.JPEG, "image/jpeg"
	}
}

func normalizeContentType(value, fileName, decodedFormat string) string {
	switch decodedFormat {
	case "jpeg", "png", "gif", "webp":
		return "image/" + decodedFormat
	}
	ct := strings.ToLower(strings.TrimSpace(value))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" {
		return ct
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(mt)
		}
	}
	return "image/jpeg"
}

var _ Processor = (*ImagingProcessor)(nil)
