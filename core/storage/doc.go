// Package storage provides the object storage client used to fetch trained
// model artifacts.
//
// It wraps the MinIO SDK (S3 compatible) behind a narrow Client interface so
// the preflight model check can be tested against a mock. Only read-side
// operations are exposed: the launcher verifies and downloads artifacts, it
// never publishes them.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err != nil {
//	    log.Fatal("Storage client failed", zap.Error(err))
//	}
//	rc, err := client.GetObject(ctx, cfg.Storage.Bucket, "drowsiness_model.h5", minio.GetObjectOptions{})
package storage
