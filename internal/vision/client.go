// Package vision wraps the Google Cloud Vision document-text API behind
// the OCR engine contract used by the upload pipeline.
package vision

import (
	"context"
	"errors"
	"strings"

	visionapi "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/internal/service"
)

// Language hints passed with every request: English plus Filipino/Tagalog,
// the languages bank screenshots in scope actually carry.
var languageHints = []string{"en", "fil", "tl"}

type Client struct {
	api    *visionapi.ImageAnnotatorClient
	logger *zap.Logger
}

// New builds a Vision client. credentialsFile may be empty, in which case
// the SDK falls back to application default credentials.
func New(ctx context.Context, credentialsFile string, logger *zap.Logger) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	api, err := visionapi.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, &errs.ExternalServiceError{Service: "vision", Err: err}
	}

	return &Client{api: api, logger: logger}, nil
}

// Recognize runs document text detection over the image bytes.
func (c *Client) Recognize(ctx context.Context, imageBytes []byte) (service.OCRResult, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:        &visionpb.Image{Content: imageBytes},
			ImageContext: &visionpb.ImageContext{LanguageHints: languageHints},
			Features: []*visionpb.Feature{{
				Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION,
			}},
		}},
	}

	resp, err := c.api.BatchAnnotateImages(ctx, req)
	if err != nil {
		return service.OCRResult{}, &errs.ExternalServiceError{Service: "vision", Err: err}
	}
	if len(resp.GetResponses()) == 0 {
		return service.OCRResult{}, &errs.ExternalServiceError{Service: "vision", Err: errors.New("empty batch response")}
	}

	res, err := annotationResult(resp.GetResponses()[0])
	if err != nil {
		return service.OCRResult{}, err
	}

	c.logger.Debug("vision recognition completed",
		zap.Float64("confidence", res.Confidence),
		zap.Int("text_length", len(res.Text)),
	)
	return res, nil
}

// annotationResult maps one per-image response. A populated Error status
// is an upstream failure even when the RPC itself succeeded. Confidence is
// the mean of the per-block confidences Vision reports, defaulting to 0.90
// when it reports none.
func annotationResult(r *visionpb.AnnotateImageResponse) (service.OCRResult, error) {
	if st := r.GetError(); st != nil {
		return service.OCRResult{}, &errs.ExternalServiceError{Service: "vision", Err: errors.New(st.GetMessage())}
	}

	lang := strings.Join(languageHints, ",")
	annotation := r.GetFullTextAnnotation()
	if annotation == nil {
		return service.OCRResult{Text: "", Confidence: 0.90, Language: lang}, nil
	}

	var sum float64
	var n int
	for _, page := range annotation.GetPages() {
		for _, block := range page.GetBlocks() {
			sum += float64(block.GetConfidence())
			n++
		}
	}
	conf := 0.90
	if n > 0 {
		conf = sum / float64(n)
	}

	return service.OCRResult{
		Text:       annotation.GetText(),
		Confidence: conf,
		Language:   lang,
	}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}
