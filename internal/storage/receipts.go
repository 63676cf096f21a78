package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const receiptContentType = "application/json"

// Archive stores a settled order's receipt document under
// receipts/{restaurantID}/{orderID}.json. It satisfies the order service's
// archiver dependency.
func (r *R2Client) Archive(ctx context.Context, restaurantID, orderID string, receipt []byte) error {
	key := fmt.Sprintf("receipts/%s/%s.json", restaurantID, orderID)
	contentType := receiptContentType

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &r.bucket,
		Key:         &key,
		Body:        bytes.NewReader(receipt),
		ContentType: &contentType,
	})
	return err
}
