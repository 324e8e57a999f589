// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/rowsync/internal/log"
)

// Scheme prefixes an S3 object reference.
const Scheme = "s3://"

// Object addresses a single S3 object, optionally pinned to a version.
type Object struct {
	Bucket    string
	Key       string
	VersionID string
}

// String returns the object in s3://bucket/key[?versionId=] form.
func (o Object) String() string {
	s := Scheme + o.Bucket + "/" + o.Key
	if o.VersionID != "" {
		s += "?versionId=" + url.QueryEscape(o.VersionID)
	}
	return s
}

// IsURI reports whether s looks like an S3 object reference.
func IsURI(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURI parses s3://bucket/key[?versionId=...].
func ParseURI(s string) (Object, error) {
	if !IsURI(s) {
		return Object{}, fmt.Errorf("not an s3 uri: %s", s)
	}

	u, err := url.Parse(s)
	if err != nil {
		return Object{}, fmt.Errorf("failed to parse %s: %w", s, err)
	}

	obj := Object{
		Bucket:    u.Host,
		Key:       strings.TrimPrefix(u.Path, "/"),
		VersionID: u.Query().Get("versionId"),
	}
	if obj.Bucket == "" || obj.Key == "" {
		return Object{}, fmt.Errorf("s3 uri needs a bucket and a key: %s", s)
	}
	return obj, nil
}

// Getter is the part of the S3 client Fetch needs.
type Getter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Fetch downloads the body of obj.
func Fetch(ctx context.Context, client Getter, obj Object) ([]byte, error) {
	if client == nil {
		return nil, errors.New("no s3 client")
	}

	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(obj.Bucket),
		Key:    awsv2.String(obj.Key),
	}
	if obj.VersionID != "" {
		in.VersionId = awsv2.String(obj.VersionID)
	}

	out, err := client.GetObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", obj, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", obj, err)
	}
	log.Debugf("s3 fetch: obj=%s bytes=%d", obj, len(body))
	return body, nil
}
