// Package dialogflow classifies user messages with the Dialogflow ES sessions API.
package dialogflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	df "cloud.google.com/go/dialogflow/apiv2"
	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

type detectFunc func(ctx context.Context, req *dialogflowpb.DetectIntentRequest) (*dialogflowpb.DetectIntentResponse, error)

// Client wraps a Dialogflow sessions client.
type Client struct {
	detect   detectFunc
	close    func() error
	project  string
	language string
	logger   *zap.Logger
}

// Config holds the Dialogflow connection settings.
type Config struct {
	ProjectID       string
	LanguageCode    string
	CredentialsFile string
	Endpoint        string
	Logger          *zap.Logger
}

// New dials Dialogflow. Credentials come from CredentialsFile when set,
// otherwise from application default credentials.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	sc, err := df.NewSessionsClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("dialogflow sessions client: %w", err)
	}

	c := newClient(func(ctx context.Context, req *dialogflowpb.DetectIntentRequest) (*dialogflowpb.DetectIntentResponse, error) {
		return sc.DetectIntent(ctx, req)
	}, cfg)
	c.close = sc.Close
	return c, nil
}

func newClient(detect detectFunc, cfg *Config) *Client {
	lang := cfg.LanguageCode
	if lang == "" {
		lang = "en"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		detect:   detect,
		close:    func() error { return nil },
		project:  cfg.ProjectID,
		language: lang,
		logger:   logger,
	}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.close()
}

// Detect classifies text within sessionID. History is forwarded as the query
// payload so fulfillment webhooks can see prior turns.
func (c *Client) Detect(
	ctx context.Context, text, sessionID string, history []chat.Turn,
) (*chat.Classification, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}

	payload, err := historyPayload(history)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	req := &dialogflowpb.DetectIntentRequest{
		Session: fmt.Sprintf("projects/%s/agent/sessions/%s", c.project, sessionID),
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_Text{
				Text: &dialogflowpb.TextInput{Text: text, LanguageCode: c.language},
			},
		},
		QueryParams: &dialogflowpb.QueryParameters{Payload: payload},
	}

	start := time.Now()
	resp, err := c.detect(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("detect intent: %w", err)
	}

	qr := resp.GetQueryResult()
	if qr == nil {
		return nil, errors.New("detect intent: empty query result")
	}

	c.logger.Debug("intent detected",
		zap.String("intent", qr.GetIntent().GetDisplayName()),
		zap.String("action", qr.GetAction()),
		zap.Float32("confidence", qr.GetIntentDetectionConfidence()),
		zap.Duration("took", time.Since(start)),
	)

	return &chat.Classification{
		Intent:          qr.GetIntent().GetDisplayName(),
		Action:          qr.GetAction(),
		Confidence:      float64(qr.GetIntentDetectionConfidence()),
		FulfillmentText: qr.GetFulfillmentText(),
		Parameters:      Flatten(qr.GetParameters()),
	}, nil
}

func historyPayload(history []chat.Turn) (*structpb.Struct, error) {
	turns := make([]any, 0, len(history))
	for _, t := range history {
		turns = append(turns, map[string]any{"question": t.Question, "answer": t.Answer})
	}
	return structpb.NewStruct(map[string]any{"conversationHistory": turns})
}
