package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primalspirits/signup-page/pkg/clients/sanity"
	"github.com/primalspirits/signup-page/pkg/config"
)

func TestNewContentClient_Fixture(t *testing.T) {
	client, err := newContentClient(&config.Config{ContentFixture: "content.example.yaml"})
	require.NoError(t, err)

	content, err := client.FetchSignupPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Get Exclusive Primal Gin Offers", content.Heading)
	assert.Len(t, content.Gallery, 2)
	assert.Equal(t, 1920, content.Gallery[0].Dimensions.Width)
}

func TestNewContentClient_DefaultCopy(t *testing.T) {
	client, err := newContentClient(&config.Config{})
	require.NoError(t, err)

	content, err := client.FetchSignupPage(context.Background())
	require.NoError(t, err)
	assert.Empty(t, content.Heading)
	assert.NotNil(t, content.Gallery)
}

func TestNewContentClient_MissingFixture(t *testing.T) {
	_, err := newContentClient(&config.Config{ContentFixture: "does-not-exist.yaml"})
	assert.Error(t, err)
}

func TestNewContentClient_Sanity(t *testing.T) {
	client, err := newContentClient(&config.Config{
		SanityProjectID:  "abc123",
		SanityDataset:    "production",
		SanityAPIVersion: "2024-01-01",
	})
	require.NoError(t, err)
	_, isMemory := client.(*sanity.MemoryStore)
	assert.False(t, isMemory)
}

func TestRun_ReturnsStartupError(t *testing.T) {
	err := run(&config.Config{
		Port:                "0",
		GinMode:             "test",
		ContentFixture:      "does-not-exist.yaml",
		MaxSlideshowStreams: 1,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "content source")
}
