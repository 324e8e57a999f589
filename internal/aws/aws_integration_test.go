// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_FetchVersions stores two versions of an item document in a
// scratch bucket and fetches each. Requires AWS credentials in the
// environment.
func TestIntegration_FetchVersions(t *testing.T) {
	ctx := context.Background()

	client, err := NewS3FromEnv(ctx, WithRegion("us-east-1"))
	require.NoError(t, err)

	bucket := fmt.Sprintf("rowsync-test-%d", time.Now().UnixNano())
	_, err = client.CreateBucket(ctx, &s3v2.CreateBucketInput{Bucket: awsv2.String(bucket)})
	require.NoError(t, err)
	defer func() {
		_, _ = client.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(bucket)})
	}()

	put := func(body string) {
		_, err := client.PutObject(ctx, &s3v2.PutObjectInput{
			Bucket: awsv2.String(bucket),
			Key:    awsv2.String("items.json"),
			Body:   bytes.NewReader([]byte(body)),
		})
		require.NoError(t, err)
	}
	defer func() {
		_, _ = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{
			Bucket: awsv2.String(bucket),
			Key:    awsv2.String("items.json"),
		})
	}()

	put(`[{"id":1}]`)
	obj, err := ParseURI("s3://" + bucket + "/items.json")
	require.NoError(t, err)

	body, err := Fetch(ctx, client, obj)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(body))

	put(`[{"id":2}]`)
	body, err = Fetch(ctx, client, obj)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2}]`, string(body))
}
