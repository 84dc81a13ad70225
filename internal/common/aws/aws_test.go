package aws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct{ mock.Mock }

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func TestDocumentArchive_Key(t *testing.T) {
	a := NewDocumentArchive(&mockS3{}, "docs", "/applications/")
	assert.Equal(t, "applications/abc/APP-1.pdf", a.Key("abc", "APP-1"))

	bare := NewDocumentArchive(&mockS3{}, "docs", "")
	assert.Equal(t, "abc/APP-1.pdf", bare.Key("abc", "APP-1"))
}

func TestDocumentArchive_Put(t *testing.T) {
	client := &mockS3{}
	archive := NewDocumentArchive(client, "docs", "applications")
	ctx := context.Background()

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return awssdk.ToString(in.Bucket) == "docs" &&
			awssdk.ToString(in.Key) == "applications/abc/APP-1.pdf" &&
			awssdk.ToString(in.ContentType) == "application/pdf" &&
			awssdk.ToInt64(in.ContentLength) == 8 &&
			in.Metadata["reference-number"] == "APP-1" &&
			string(body) == "%PDF-1.3"
	})).Return(&s3.PutObjectOutput{}, nil)

	location, err := archive.Put(ctx, archive.Key("abc", "APP-1"), []byte("%PDF-1.3"), map[string]string{"reference-number": "APP-1"})

	require.NoError(t, err)
	assert.Equal(t, "s3://docs/applications/abc/APP-1.pdf", location)
	client.AssertExpectations(t)
}

func TestDocumentArchive_PutError(t *testing.T) {
	client := &mockS3{}
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))

	_, err := NewDocumentArchive(client, "docs", "").Put(context.Background(), "k.pdf", []byte("x"), nil)
	assert.ErrorContains(t, err, "AccessDenied")
}

func TestEventPublisher_PublishDocumentGenerated(t *testing.T) {
	client := &mockSNS{}
	publisher := NewEventPublisher(client, "arn:aws:sns:eu-west-1:123456789012:documents")
	ctx := context.Background()
	event := DocumentGeneratedEvent{
		ApplicationID: "abc",
		Location:      "s3://docs/applications/abc/APP-1.pdf",
		SizeBytes:     1024,
		GeneratedAt:   "2024-02-14T10:00:00Z",
	}

	client.On("Publish", ctx, mock.MatchedBy(func(in *sns.PublishInput) bool {
		var got DocumentGeneratedEvent
		if err := json.Unmarshal([]byte(awssdk.ToString(in.Message)), &got); err != nil {
			return false
		}
		return awssdk.ToString(in.TopicArn) == "arn:aws:sns:eu-west-1:123456789012:documents" &&
			awssdk.ToString(in.MessageAttributes["eventType"].StringValue) == EventDocumentGenerated &&
			got == event
	})).Return(&sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil)

	id, err := publisher.PublishDocumentGenerated(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	client.AssertExpectations(t)
}

func TestEventPublisher_PublishError(t *testing.T) {
	client := &mockSNS{}
	client.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	_, err := NewEventPublisher(client, "arn").PublishDocumentGenerated(context.Background(), DocumentGeneratedEvent{})
	assert.ErrorContains(t, err, "throttled")
}
