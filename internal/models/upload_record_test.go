package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUploadStatus(t *testing.T) {
	cases := []struct {
		success, failed, duplicate int
		want                       UploadStatus
	}{
		{5, 0, 0, UploadStatusSuccess},
		{0, 3, 0, UploadStatusFailed},
		{0, 0, 4, UploadStatusFailed},
		{5, 1, 2, UploadStatusPartial},
		{5, 0, 2, UploadStatusPartial},
		{5, 1, 0, UploadStatusPartial},
		{0, 0, 0, UploadStatusSuccess},
	}
	for _, tc := range cases {
		got := DeriveUploadStatus(tc.success, tc.failed, tc.duplicate)
		assert.Equalf(t, tc.want, got, "success=%d failed=%d duplicate=%d", tc.success, tc.failed, tc.duplicate)
	}
}
